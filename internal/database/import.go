package database

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/pageza/recipe-robot/backend/config"
)

// ErrSourceNotFound is returned when the ingredient source does not exist
var ErrSourceNotFound = errors.New("ingredient source not found")

// ObjectGetter is the part of the S3 client the source opener needs
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// SourceOpener opens the ingredient CSV from a local path or an s3:// URL
type SourceOpener struct {
	// S3 is only needed for s3:// sources
	S3 ObjectGetter
}

// Open returns a reader over the source at path
func (o SourceOpener) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if !strings.HasPrefix(path, "s3://") {
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return f, err
	}

	if o.S3 == nil {
		return nil, fmt.Errorf("no S3 client configured for %s", path)
	}
	bucket, key, err := config.ParseS3URL(path)
	if err != nil {
		return nil, err
	}
	out, err := o.S3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		var noBucket *s3types.NoSuchBucket
		if errors.As(err, &noKey) || errors.As(err, &noBucket) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	return out.Body, nil
}

// ReadIngredientNames reads the named column from every row of a CSV with a
// header line
func ReadIngredientNames(r io.Reader, column string) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idx := -1
	for i, name := range header {
		// tolerate a UTF-8 byte order mark on the first column
		if strings.TrimPrefix(strings.TrimSpace(name), "\ufeff") == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("CSV has no %q column", column)
	}

	var names []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if idx < len(record) {
			names = append(names, record[idx])
		} else {
			names = append(names, "")
		}
	}
	return names, nil
}

// ImportIngredients loads the CSV at path into the store. A missing source
// logs a warning and leaves the store empty.
func ImportIngredients(ctx context.Context, store *FoodStore, opener SourceOpener, path, column string, log *zap.Logger) (int, error) {
	src, err := opener.Open(ctx, path)
	if errors.Is(err, ErrSourceNotFound) {
		log.Warn("Ingredients CSV file not found", zap.String("path", path))
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	defer src.Close()

	names, err := ReadIngredientNames(src, column)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return store.BulkLoad(ctx, names)
}
