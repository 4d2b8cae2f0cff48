package storage

import (
	"errors"
	"testing"

	"github.com/aimlfun/1969lander/internal/model"
)

func TestGenomeCodecRoundTrip(t *testing.T) {
	genome := testGenome("g1")
	data, err := EncodeGenome(genome)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeGenome(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.ID != genome.ID || len(decoded.Layers) != 1 || decoded.Layers[0].Biases[0] != 0.125 {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	genome := testGenome("g1")
	genome.SchemaVersion = CurrentSchemaVersion + 1
	data, err := EncodeGenome(genome)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeGenome(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected version mismatch, got %v", err)
	}

	record := model.FlightRecord{RunID: "run-1"} // unstamped
	recordData, err := EncodeFlightRecord(record)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeFlightRecord(recordData); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected version mismatch, got %v", err)
	}
}

func TestFlightRecordCodecKeepsGenome(t *testing.T) {
	record := model.FlightRecord{
		VersionedRecord: Stamp(),
		RunID:           "run-1",
		Score:           590500,
		BurnHistory:     []float64{200, 180},
		Formula:         "tanh(0.5*altitude + 0.125)",
		Genome:          testGenome("g1"),
	}
	data, err := EncodeFlightRecord(record)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeFlightRecord(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Genome.ID != "g1" || decoded.Formula != record.Formula || len(decoded.BurnHistory) != 2 {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestStamp(t *testing.T) {
	v := Stamp()
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		t.Fatalf("stamp = %+v", v)
	}
}
