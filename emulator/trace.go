package emulator

import (
	"errors"
	"io"
	"iter"

	"github.com/fxamacker/cbor/v2"

	"github.com/ezrec/bunny/cpu"
)

// TraceRecord is the trace of a single executed instruction.
type TraceRecord struct {
	Tick     int                       `cbor:"tick"` // Tick count after execution.
	Ip       int                       `cbor:"ip"`   // IP of the executed instruction.
	LineNo   int                       `cbor:"line"` // Source line of the executed instruction.
	Code     string                    `cbor:"code"` // Instruction as executed.
	Register [cpu.REGISTER_COUNT]int32 `cbor:"reg"`  // Registers after execution.
}

var traceEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	traceEncMode = em
}

// Trace writes a CBOR sequence of trace records.
type Trace struct {
	Records int // Count of written records.

	enc *cbor.Encoder
}

// NewTrace creates a trace writing to w.
func NewTrace(w io.Writer) *Trace {
	return &Trace{enc: traceEncMode.NewEncoder(w)}
}

// Record writes a single trace record.
func (tr *Trace) Record(rec TraceRecord) (err error) {
	err = tr.enc.Encode(&rec)
	if err != nil {
		return
	}

	tr.Records += 1

	return
}

// ReadTrace returns an iterator over the records of a CBOR trace.
// Iteration stops after the first error.
func ReadTrace(r io.Reader) iter.Seq2[TraceRecord, error] {
	return func(yield func(TraceRecord, error) bool) {
		dec := cbor.NewDecoder(r)
		for {
			var rec TraceRecord
			err := dec.Decode(&rec)
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}
