// Package photobook implements the photo ingestion and retrieval pipeline:
// upload validation, best-effort image captioning, durable blob storage and
// relational metadata persistence for a single photo.
//
// The package is built around a small Service interface constructed with
// functional options:
//
//	svc, err := photobook.New(
//	    photobook.WithRepository(repo),
//	    photobook.WithBlobStore(store),
//	    photobook.WithDescriber(vision),
//	)
//
// Storage backends live under storage/ (memory, fs, s3), metadata
// repositories under repo/ (memory, postgres), and the caption client under
// vision/. The telemetry package provides an OpenTelemetry decorator around
// Service; it is optional and never affects pipeline outcome.
//
// Consistency model: a photo's metadata row is inserted only after its blob
// write succeeded, so a listed record always has a retrievable blob. Delete
// removes the blob before the row, so a failure in between degrades to a
// detectable dangling record rather than a leaked blob.
package photobook
