package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"reflect"

	"github.com/BielosX/wombat/pokedex/src/export/parquet"
	"github.com/BielosX/wombat/pokedex/src/pokedex"
)

// PokemonWriter writes parquet.Pokemon rows as CSV, using the parquet column
// names as the header so both exports share one schema.
type PokemonWriter struct {
	buffer *bytes.Buffer
	writer *csv.Writer
	fields []reflect.StructField
}

func NewPokemonWriter() *PokemonWriter {
	buffer := new(bytes.Buffer)
	return &PokemonWriter{
		buffer: buffer,
		writer: csv.NewWriter(buffer),
		fields: getFields(reflect.TypeOf(parquet.Pokemon{})),
	}
}

func (w *PokemonWriter) WriteHeader() error {
	var parquetNames []string
	for _, field := range w.fields {
		properties := parquetTagToKeyValue(field.Tag.Get("parquet"))
		parquetNames = append(parquetNames, properties["name"])
	}
	return w.writer.Write(parquetNames)
}

func (w *PokemonWriter) Write(pokemon parquet.Pokemon) error {
	value := reflect.ValueOf(pokemon)
	converted := make([]string, 0, len(w.fields))
	for _, field := range w.fields {
		converted = append(converted, fmt.Sprint(value.FieldByName(field.Name).Interface()))
	}
	return w.writer.Write(converted)
}

func (w *PokemonWriter) WriteList(list pokedex.List) error {
	for i, entry := range list {
		if err := w.Write(parquet.ToPokemon(i, entry)); err != nil {
			return err
		}
	}
	return nil
}

func (w *PokemonWriter) Finish() error {
	w.writer.Flush()
	return w.writer.Error()
}

func (w *PokemonWriter) Size() int {
	return w.buffer.Len()
}

func (w *PokemonWriter) BufferReader() io.Reader {
	return w.buffer
}
