// Package process implements command line actions operating on mdast JSON
// documents.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"mdattr/attrs"
	"mdattr/config"
	"mdattr/mdast"
	"mdattr/state"
)

const stdio = "-"

// Run is the action of the transform command.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("transform")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	dst := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Processing starting", zap.String("source", displayName(src)), zap.String("destination", displayName(dst)))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	in, closeIn, err := openSource(src)
	if err != nil {
		return err
	}
	defer closeIn()

	if src != stdio {
		if fi, err := os.Stat(src); err == nil {
			log.Debug("Reading source", zap.String("size", humanize.Bytes(uint64(fi.Size()))))
		}
		if err := env.Rpt.StoreCopy("input/"+filepath.Base(src), src); err != nil {
			log.Warn("Unable to store input in the report", zap.Error(err))
		}
	}

	var buf bytes.Buffer
	if err := transform(env, in, &buf, log); err != nil {
		return err
	}
	log.Debug("Result prepared", zap.String("format", string(env.Cfg.Output.Format)), zap.String("size", humanize.Bytes(uint64(buf.Len()))))
	return writeDestination(outputPath(src, dst, env.Cfg.Output.Format), buf.Bytes(), env.Overwrite)
}

// Dump is the action of the dump command.
func Dump(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	in, closeIn, err := openSource(src)
	if err != nil {
		return err
	}
	defer closeIn()

	root, err := mdast.Decode(in)
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", displayName(src), err)
	}
	env.Log.Debug("Dumping syntax tree", zap.String("source", displayName(src)))

	if _, err := io.WriteString(os.Stdout, root.String()); err != nil {
		return fmt.Errorf("unable to write tree: %w", err)
	}
	return nil
}

// transform decodes a single document, resolves its attributes and encodes
// the result in the configured output format.
func transform(env *state.LocalEnv, in io.Reader, out io.Writer, log *zap.Logger) error {
	root, err := mdast.Decode(in)
	if err != nil {
		return err
	}
	if root.Kind != mdast.KindRoot {
		log.Warn("Document does not start with root node", zap.Stringer("kind", root.Kind))
	}
	if env.Rpt != nil {
		env.Rpt.StoreData("trees/input.txt", []byte(root.String()))
	}

	result := attrs.Transform(root, env.TransformOptions(), log)

	if env.Rpt != nil {
		env.Rpt.StoreData("trees/output.txt", []byte(result.String()))
	}

	if env.Cfg.Transform.Verify {
		if err := attrs.Verify(result); err != nil {
			return fmt.Errorf("resulting tree failed verification: %w", err)
		}
		log.Debug("Resulting tree verified")
	}

	switch env.Cfg.Output.Format {
	case config.OutputFmtTree:
		_, err = io.WriteString(out, result.String())
	default:
		err = mdast.Encode(out, result, env.Cfg.Output.Indent)
	}
	if err != nil {
		return fmt.Errorf("unable to write result: %w", err)
	}
	return nil
}

func openSource(src string) (io.Reader, func(), error) {
	if src == stdio {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open source: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// outputPath names the result file when destination is an existing
// directory: source base name with extension of the output format.
func outputPath(src, dst string, format config.OutputFmt) string {
	if len(dst) == 0 || dst == stdio {
		return dst
	}
	if fi, err := os.Stat(dst); err != nil || !fi.IsDir() {
		return dst
	}
	name := "stdin"
	if src != stdio {
		base := filepath.Base(src)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return filepath.Join(dst, name+format.Ext())
}

func writeDestination(dst string, data []byte, overwrite bool) error {
	if len(dst) == 0 || dst == stdio {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("unable to write result: %w", err)
		}
		return nil
	}

	if _, err := os.Stat(dst); err == nil && !overwrite {
		return fmt.Errorf("destination file '%s' already exists", dst)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("unable to create destination directory: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("unable to write destination file '%s': %w", dst, err)
	}
	return nil
}

func displayName(name string) string {
	switch name {
	case "", stdio:
		return "STDIO"
	default:
		return name
	}
}
