package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/multierr"

	"mdattr/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates initialized empty report.
func (conf *ReporterConfig) Prepare() (*Report, error) {

	r := &Report{entries: make(map[string]entry)}

	if f, err := os.Create(conf.Destination); err == nil {
		r.file = f
	} else if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err == nil {
		r.file = f
	} else {
		return nil, fmt.Errorf("unable to create report: %w", err)
	}
	return r, nil
}

type entry struct {
	original string
	actual   string
	stamp    time.Time
	data     []byte
}

// Report accumulates syntax trees, configuration and logs of a single run so
// they could be packed into one archive for troubleshooting.
// NOTE: not to be used concurrently!
type Report struct {
	entries map[string]entry
	file    *os.File
}

// Close writes the archive. Nil report is valid and means no report has been
// requested.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.finalize()
	return multierr.Append(err, r.file.Close())
}

// Name returns absolute name of the archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store remembers path to a file which content will be archived when report
// is closed, so files still being written (logs) end up complete.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}

	if old, exists := r.entries[name]; exists && old.original != path {
		panic(fmt.Sprintf("Attempt to overwrite file in the report for [%s]: was %s, now %s", name, old.original, path))
	}

	e := entry{original: path, actual: path}
	if p, err := filepath.Abs(path); err == nil {
		e.actual = p
	}
	r.entries[name] = e
}

// StoreData puts data into archive under requested name. Repeated names are
// versioned with timestamps so the same tree could be stored after each stage.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	r.storeData(name, "", data)
}

// StoreCopy reads the file now and archives its current content.
func (r *Report) StoreCopy(name, path string) error {
	if r == nil {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to copy %s into report: %w", path, err)
	}
	r.storeData(name, path, data)
	return nil
}

func (r *Report) storeData(name, path string, data []byte) {
	e := entry{original: path, data: data, stamp: time.Now()}
	if _, exists := r.entries[name]; exists {
		name = fmt.Sprintf("%s-%d", name, e.stamp.UnixNano())
	}
	if data == nil {
		// nil data marks entries read from disk
		e.data = []byte{}
	}
	r.entries[name] = e
}

func (r *Report) finalize() error {

	arc := zip.NewWriter(r.file)

	names, manifest := prepareManifest(r.entries)
	err := saveFile(arc, "MANIFEST", time.Now(), manifest)

	for _, name := range names {
		if err != nil {
			break
		}
		e := r.entries[name]
		if e.data != nil {
			err = saveFile(arc, name, e.stamp, bytes.NewReader(e.data))
			continue
		}
		// absent files are ignored
		info, serr := os.Stat(e.actual)
		if serr != nil || !info.Mode().IsRegular() {
			continue
		}
		var f *os.File
		if f, err = os.Open(e.actual); err != nil {
			break
		}
		err = multierr.Append(saveFile(arc, name, info.ModTime(), f), f.Close())
	}
	return multierr.Append(err, arc.Close())
}

func prepareManifest(entries map[string]entry) ([]string, *bytes.Buffer) {

	now := time.Now()

	buf := new(bytes.Buffer)
	keys := slices.Sorted(maps.Keys(entries))
	for _, k := range keys {
		e := entries[k]
		if e.stamp.IsZero() {
			e.stamp = now
		}
		fmt.Fprintf(buf, "%s\t%s\t%s : %s\n", e.stamp.UTC().Format(time.UnixDate), k, e.original, e.actual)
	}
	return keys, buf
}

func saveFile(dst *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := dst.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
