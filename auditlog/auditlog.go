// Package auditlog archives settlement and governance records.
//
// The log implements ledger.Recorder. Each record is assigned a UUID,
// serialized to canonical JSON and written to a content-addressable archive;
// the resulting CID is the record's durable address. Emission is best-effort:
// an archive failure is logged and dropped, never surfaced to the engine,
// because records describe transitions that have already applied.
package auditlog

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/ipfs/go-cid"
	"github.com/rs/zerolog"

	"github.com/paythefly/PayTheFlyContract-sub001/ledger"
	"github.com/paythefly/PayTheFlyContract-sub001/model"
	"github.com/paythefly/PayTheFlyContract-sub001/storage"
)

// Log writes audit records to an archive. The zero value is not usable;
// construct with New.
type Log struct {
	archive storage.CAS
	logger  zerolog.Logger
}

// New returns a Log backed by archive. A nil archive disables persistence:
// records are only logged.
func New(archive storage.CAS, logger zerolog.Logger) *Log {
	return &Log{archive: archive, logger: logger}
}

// Record implements ledger.Recorder.
func (l *Log) Record(rec ledger.Record) {
	wire := model.RecordFrom(uuid.NewString(), rec)
	b, err := json.Marshal(wire)
	if err != nil {
		l.logger.Error().Err(err).Str("kind", wire.Kind).Msg("audit record not serializable")
		return
	}

	ev := l.logger.Debug().
		Str("record", wire.ID).
		Str("kind", wire.Kind).
		Str("project", wire.Project)

	if l.archive != nil {
		id, err := l.archive.Put(b)
		if err != nil {
			l.logger.Error().Err(err).Str("record", wire.ID).Msg("audit record not archived")
			return
		}
		ev = ev.Str("cid", id.String())
	}
	ev.Msg("audit record")
}

// Load fetches and decodes an archived record by CID.
func (l *Log) Load(id cid.Cid) (model.Record, error) {
	if l.archive == nil {
		return model.Record{}, storage.ErrNotFound
	}
	b, err := l.archive.Get(id)
	if err != nil {
		return model.Record{}, err
	}
	var rec model.Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return model.Record{}, err
	}
	return rec, nil
}
