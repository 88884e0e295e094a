package export

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/BielosX/wombat/pokedex/src/export/csv"
	"github.com/BielosX/wombat/pokedex/src/export/parquet"
	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	CSVContentType     = "text/csv; charset=utf-8"
	ParquetContentType = "application/vnd.apache.parquet"
)

// ErrNoBucket is returned by Publish when no bucket is configured.
var ErrNoBucket = errors.New("no export bucket configured")

type File struct {
	Reader io.Reader
	Size   int
}

func CSV(list pokedex.List) (File, error) {
	w := csv.NewPokemonWriter()
	if err := w.WriteHeader(); err != nil {
		return File{}, err
	}
	if err := w.WriteList(list); err != nil {
		return File{}, fmt.Errorf("writing csv rows: %w", err)
	}
	if err := w.Finish(); err != nil {
		return File{}, err
	}
	return File{Reader: w.BufferReader(), Size: w.Size()}, nil
}

func Parquet(list pokedex.List) (File, error) {
	w, err := parquet.NewPokemonWriter()
	if err != nil {
		return File{}, fmt.Errorf("creating parquet writer: %w", err)
	}
	if err := w.WriteList(list); err != nil {
		return File{}, fmt.Errorf("writing parquet rows: %w", err)
	}
	if err := w.Finish(); err != nil {
		return File{}, err
	}
	return File{Reader: w.BufferReader(), Size: w.Size()}, nil
}

type Uploader interface {
	PutFile(ctx context.Context, reader io.Reader, bucket, key, contentType string) error
}

// Publisher uploads Parquet exports. Nothing in the service reads them back.
type Publisher struct {
	uploader Uploader
	bucket   string
	sugar    *zap.SugaredLogger
}

func NewPublisher(uploader Uploader, bucket string, sugar *zap.SugaredLogger) *Publisher {
	return &Publisher{uploader: uploader, bucket: bucket, sugar: sugar}
}

func (p *Publisher) Enabled() bool {
	return p != nil && p.uploader != nil && p.bucket != ""
}

// Publish writes list to pokedex/<owner>/<uuid>.parquet and returns the key.
func (p *Publisher) Publish(ctx context.Context, owner string, list pokedex.List) (string, error) {
	if !p.Enabled() {
		return "", ErrNoBucket
	}
	file, err := Parquet(list)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("pokedex/%s/%s.parquet", owner, uuid.NewString())
	p.sugar.Infof("Sending parquet file of size %d to S3 bucket %s", file.Size, p.bucket)
	if err := p.uploader.PutFile(ctx, file.Reader, p.bucket, key, ParquetContentType); err != nil {
		p.sugar.Errorf("Failed to upload %s: %s", key, err)
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	return key, nil
}
