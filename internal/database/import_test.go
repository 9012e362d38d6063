package database

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string]string
	input   *s3.GetObjectInput
	err     error
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unique_indexed_ingredients.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadIngredientNames(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		column  string
		want    []string
		wantErr string
	}{
		{
			name:   "single column",
			csv:    "descrip\nchicken breast\ntomato\n",
			column: "descrip",
			want:   []string{"chicken breast", "tomato"},
		},
		{
			name:   "column picked by header",
			csv:    "id,descrip,group\n1,\"salt, iodized\",spices\n2,onion,vegetables\n",
			column: "descrip",
			want:   []string{"salt, iodized", "onion"},
		},
		{
			name:   "byte order mark",
			csv:    "\ufeffdescrip\ngarlic\n",
			column: "descrip",
			want:   []string{"garlic"},
		},
		{
			name:   "short row",
			csv:    "id,descrip\n1,olive oil\n2\n",
			column: "descrip",
			want:   []string{"olive oil", ""},
		},
		{
			name:   "empty input",
			csv:    "",
			column: "descrip",
			want:   nil,
		},
		{
			name:    "missing column",
			csv:     "name\nrice\n",
			column:  "descrip",
			wantErr: `CSV has no "descrip" column`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadIngredientNames(strings.NewReader(tt.csv), tt.column)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImportIngredients_LocalFile(t *testing.T) {
	store, _ := setupFoodStore(t, 20)
	ctx := context.Background()
	path := writeCSV(t, "descrip\n"+strings.Join(seedFoods, "\n")+"\n\n")

	n, err := ImportIngredients(ctx, store, SourceOpener{}, path, "descrip", store.log)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 7, count)
}

func TestImportIngredients_MissingFileLeavesStoreEmpty(t *testing.T) {
	store, logs := setupFoodStore(t, 20)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "absent.csv")

	n, err := ImportIngredients(ctx, store, SourceOpener{}, path, "descrip", store.log)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, logs.FilterMessage("Ingredients CSV file not found").Len())

	foods, err := store.FindContaining(ctx, "chicken", 0)
	require.NoError(t, err)
	assert.Empty(t, foods)
}

func TestImportIngredients_MissingColumnFails(t *testing.T) {
	store, _ := setupFoodStore(t, 20)
	path := writeCSV(t, "name\nrice\n")

	_, err := ImportIngredients(context.Background(), store, SourceOpener{}, path, "descrip", store.log)
	assert.Error(t, err)
}

func TestImportIngredients_S3(t *testing.T) {
	store, logs := setupFoodStore(t, 20)
	ctx := context.Background()
	client := &fakeS3{objects: map[string]string{
		"recipe-data/foods/ingredients.csv": "descrip\nchicken breast\ntomato\n",
	}}
	opener := SourceOpener{S3: client}

	n, err := ImportIngredients(ctx, store, opener, "s3://recipe-data/foods/ingredients.csv", "descrip", store.log)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "recipe-data", aws.ToString(client.input.Bucket))
	assert.Equal(t, "foods/ingredients.csv", aws.ToString(client.input.Key))

	n, err = ImportIngredients(ctx, store, opener, "s3://recipe-data/missing.csv", "descrip", store.log)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, logs.FilterMessage("Ingredients CSV file not found").Len())
}

func TestSourceOpener_S3Errors(t *testing.T) {
	ctx := context.Background()

	_, err := SourceOpener{}.Open(ctx, "s3://bucket/key.csv")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSourceNotFound)

	_, err = SourceOpener{S3: &fakeS3{err: &s3types.NoSuchBucket{}}}.Open(ctx, "s3://bucket/key.csv")
	assert.ErrorIs(t, err, ErrSourceNotFound)

	denied := errors.New("access denied")
	_, err = SourceOpener{S3: &fakeS3{err: denied}}.Open(ctx, "s3://bucket/key.csv")
	assert.ErrorIs(t, err, denied)
	assert.NotErrorIs(t, err, ErrSourceNotFound)
}

func TestBundledIngredientList(t *testing.T) {
	f, err := os.Open(filepath.Join("..", "..", "data", "unique_indexed_ingredients.csv"))
	require.NoError(t, err)
	defer f.Close()

	names, err := ReadIngredientNames(f, "descrip")
	require.NoError(t, err)
	assert.Contains(t, names, "chicken breast")
	assert.Contains(t, names, "tuna, canned in water")
	for _, name := range names {
		assert.NotEmpty(t, strings.TrimSpace(name))
	}
}
