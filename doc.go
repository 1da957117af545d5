// Package testmaker implements the timing core of a multi-modal stimulus
// presentation toolkit. It couples an onset-ordered event timeline, activity
// queries for synchronization checks, a round-trippable native document
// format, and write-only exports for EEG analysis (EEGLAB) and experiment
// design (E-Prime) pipelines into a single library that can be embedded into
// editor and presentation tools.
//
// Typical usage looks like:
//   - Build a Timeline and Add image and audio Events to it
//   - Query ActiveAt to see what a participant is exposed to at an instant
//   - Validate before a session and surface the Problems to the researcher
//   - Export through an Exporter, which resolves the format from the
//     destination name and writes the artifact in one shot
//   - Persist timelines by name through a Store (memory, bbolt, Redis, or
//     Postgres)
//
// The examples/ directory contains a runnable attention-task walkthrough
// that exercises the API in a small study.
package testmaker
