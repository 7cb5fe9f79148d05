package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/AnyUserName/imgpress/internal/compress"
	"github.com/AnyUserName/imgpress/internal/hasher"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"

	quality   int
	overwrite bool
	verbosity int
)

var rootCmd = &cobra.Command{
	Use:   "image-compressor <input> <output>",
	Short: "Compress an image file to JPEG at a chosen quality",
	Long: `image-compressor reads an image in any common format (png, jpg, gif,
bmp, tiff, webp), re-encodes it as JPEG at the requested quality and
writes the result to the output path.

Run "image-compressor serve" to expose the same pipeline over HTTP.`,
	Version:      version,
	Args:         cobra.ExactArgs(2),
	RunE:         runCompress,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().IntVarP(&quality, "quality", "q", 75, "JPEG quality 1-100")
	rootCmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace the output file if it exists")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity (repeatable)")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"image-compressor %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when -v is given at least level times.
func logVerbose(level int, format string, args ...any) {
	if verbosity >= level {
		fmt.Fprintf(os.Stderr, "[image-compressor] "+format+"\n", args...)
	}
}

// stdinIsTerminal reports whether stdin is attached to an interactive
// terminal. Overridden in tests.
var stdinIsTerminal = func() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// confirmOverwrite asks whether an existing output file may be
// replaced. Overridden in tests.
var confirmOverwrite = func(path string) (bool, error) {
	fmt.Fprintf(os.Stderr, "%s exists. Overwrite? [y/N] ", path)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	return isAffirmative(line), nil
}

// isAffirmative accepts English and Russian yes tokens.
func isAffirmative(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "д", "да":
		return true
	}
	return false
}

func runCompress(_ *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	if quality < 1 || quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100, got %d", quality)
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("input %s: %w", inputPath, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("input %s is not a regular file", inputPath)
	}

	proceed, err := checkOutput(outputPath)
	if err != nil {
		return err
	}
	if !proceed {
		fmt.Printf("Skipped: %s left untouched\n", outputPath)
		return nil
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}

	logVerbose(1, "input:   %s (%d bytes)", inputPath, len(data))
	logVerbose(1, "quality: %d", quality)

	start := time.Now()
	out, err := compress.Compress(data, quality)
	if err != nil {
		return fmt.Errorf("compress %s: %w", inputPath, err)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	logVerbose(1, "hash:    %s", hasher.ContentHash(out, 16))
	logVerbose(1, "time:    %s", time.Since(start).Round(time.Millisecond))
	fmt.Printf("Compressed %s -> %s (%d -> %d bytes, quality %d)\n",
		inputPath, outputPath, len(data), len(out), quality)
	return nil
}

// checkOutput applies the overwrite policy for an existing output
// path. It returns false when the user declined to replace the file.
func checkOutput(path string) (bool, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if overwrite {
		return true, nil
	}
	if !stdinIsTerminal() {
		return false, fmt.Errorf("%s already exists; pass --overwrite to replace it", path)
	}
	return confirmOverwrite(path)
}
