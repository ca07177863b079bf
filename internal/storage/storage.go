package storage

import (
	"context"

	"github.com/0xDeFiDevin/GammaLPvsSpot/internal/model"
)

// Sink defines an append-only destination for return rows.
type Sink interface {
	Append(ctx context.Context, row model.ReturnRow) error
}

// Multi fans a row out to several sinks. The first failing sink aborts the
// write for that row.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) Append(ctx context.Context, row model.ReturnRow) error {
	for _, sink := range m {
		if err := sink.Append(ctx, row); err != nil {
			return err
		}
	}
	return nil
}
