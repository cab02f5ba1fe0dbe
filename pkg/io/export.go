package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/linker268/Swimmer-plot/pkg/trial"
)

// patientsFile is the on-disk patients.json envelope. The version field
// exists so later schema changes can stay readable.
type patientsFile struct {
	Version  int             `json:"version"`
	Patients []trial.Patient `json:"patients"`
}

const patientsFileVersion = 1

// WritePatients encodes normalized patients as JSON and writes them to w.
// The output can be re-imported with [ReadPatients], which is how the
// layout command picks up where parse left off.
func WritePatients(patients []trial.Patient, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(patientsFile{Version: patientsFileVersion, Patients: patients}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportPatients writes patients to a JSON file at path.
// This is a convenience wrapper around [WritePatients] for file-based output.
func ExportPatients(patients []trial.Patient, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WritePatients(patients, f)
}

// WriteArtifact writes rendered bytes (SVG, PNG, PDF, or geometry JSON)
// to path.
func WriteArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
