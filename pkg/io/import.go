package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/linker268/Swimmer-plot/pkg/trial"
)

// ReadPatients decodes a patients JSON document from r.
//
// The input must be the envelope written by [WritePatients]:
//
//	{
//	  "version": 1,
//	  "patients": [{"id": "Patient 1", "cohort": "A", ...}]
//	}
//
// Unknown versions are rejected rather than silently misread. ReadPatients
// does not close r.
func ReadPatients(r io.Reader) ([]trial.Patient, error) {
	var data patientsFile
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if data.Version != patientsFileVersion {
		return nil, fmt.Errorf("unsupported patients file version %d", data.Version)
	}
	return data.Patients, nil
}

// ImportPatients reads a patients JSON file at path.
func ImportPatients(path string) ([]trial.Patient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPatients(f)
}
