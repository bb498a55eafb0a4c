// Command rawinfo inspects and develops camera raw files from the command
// line: metadata as JSON, embedded thumbnail extraction, and full develop to
// TIFF or PPM.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/cgtinker/rsraw"
	"github.com/cgtinker/rsraw/core"
	"github.com/cgtinker/rsraw/export"
)

func openRaw(path string) (*rsraw.RawImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return rsraw.Open(data)
}

// ── info ──────────────────────────────────────────────────────────────────────

type infoCmd struct {
	pretty bool
}

func (*infoCmd) Name() string     { return "info" }
func (*infoCmd) Synopsis() string { return "Print full raw metadata as JSON" }
func (*infoCmd) Usage() string    { return "info [-pretty] <file.NEF>...\n" }

func (c *infoCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.pretty, "pretty", false, "Indent the JSON output")
}

func (c *infoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		log.Println("info: no input files")
		return subcommands.ExitUsageError
	}
	enc := json.NewEncoder(os.Stdout)
	if c.pretty {
		enc.SetIndent("", "  ")
	}
	for _, path := range f.Args() {
		raw, err := openRaw(path)
		if err != nil {
			log.Printf("%s: %v", path, err)
			return subcommands.ExitFailure
		}
		info := raw.FullInfo()
		raw.Close()
		if err := enc.Encode(info); err != nil {
			log.Printf("%s: %v", path, err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// ── thumbs ────────────────────────────────────────────────────────────────────

type thumbsCmd struct {
	outputDir string
	showExif  bool
}

func (*thumbsCmd) Name() string     { return "thumbs" }
func (*thumbsCmd) Synopsis() string { return "Extract embedded thumbnails" }
func (*thumbsCmd) Usage() string    { return "thumbs [-output dir] [-exif] <file.NEF>\n" }

func (c *thumbsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "output", ".", "Directory for extracted thumbnails")
	f.BoolVar(&c.showExif, "exif", false, "Print EXIF tags of JPEG thumbnails")
}

func (c *thumbsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		log.Println("thumbs: exactly one input file required")
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)

	raw, err := openRaw(path)
	if err != nil {
		log.Printf("%s: %v", path, err)
		return subcommands.ExitFailure
	}
	defer raw.Close()

	thumbs, err := raw.ExtractThumbnails()
	if err != nil {
		log.Printf("%s: %v", path, err)
		return subcommands.ExitFailure
	}
	if len(thumbs) == 0 {
		log.Printf("%s: no embedded thumbnails", path)
		return subcommands.ExitSuccess
	}

	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		log.Printf("create output directory: %v", err)
		return subcommands.ExitFailure
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i, t := range thumbs {
		ext, data := thumbFileData(t)
		name := filepath.Join(c.outputDir, fmt.Sprintf("%s_thumb%d%s", base, i, ext))
		if err := os.WriteFile(name, data, 0o644); err != nil {
			log.Printf("write %s: %v", name, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%s: %dx%d %s, %d bytes\n", name, t.Width, t.Height, t.Format, t.Size())

		if c.showExif && t.Format == core.ThumbJPEG {
			printExif(name, t.Data)
		}
	}
	return subcommands.ExitSuccess
}

// thumbFileData picks a file extension for a thumbnail and returns the bytes
// to write. JPEG thumbnails already carry their container; 8-bit RGB bitmaps
// get a P6 header so the file is a valid PPM. 16-bit bitmaps are stored in
// host byte order, which a P6 header would misrepresent, so those and any
// unrecognized payloads are written verbatim as .bin.
func thumbFileData(t core.ThumbnailImage) (string, []byte) {
	switch {
	case t.Format == core.ThumbJPEG:
		return ".jpg", t.Data
	case t.Format == core.ThumbBitmap && t.Colors == 3:
		header := fmt.Sprintf("P6\n%d %d\n255\n", t.Width, t.Height)
		return ".ppm", append([]byte(header), t.Data...)
	default:
		return ".bin", t.Data
	}
}

type exifPrinter struct{}

func (exifPrinter) Walk(name exif.FieldName, tag *tiff.Tag) error {
	fmt.Printf("  %s: %v\n", name, tag)
	return nil
}

func printExif(name string, data []byte) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("%s: no EXIF data: %v", name, err)
		return
	}
	fmt.Printf("%s EXIF:\n", name)
	x.Walk(exifPrinter{})
}

// ── develop ───────────────────────────────────────────────────────────────────

type developCmd struct {
	bits         int
	output       string
	outputFormat string
}

func (*developCmd) Name() string     { return "develop" }
func (*developCmd) Synopsis() string { return "Run the full develop pipeline and write the result" }
func (*developCmd) Usage() string {
	return "develop [-bits 8|16] [-format tiff|ppm] [-output file] <file.NEF>\n"
}

func (c *developCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.bits, "bits", rsraw.DefaultConfig().OutputBitDepth, "Output bit depth, 8 or 16")
	f.StringVar(&c.output, "output", "", "Output file (default: input name with new extension)")
	f.StringVar(&c.outputFormat, "format", "tiff", "Output format, tiff or ppm")
}

func (c *developCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		log.Println("develop: exactly one input file required")
		return subcommands.ExitUsageError
	}
	format := strings.ToLower(c.outputFormat)
	if format != "tiff" && format != "ppm" {
		log.Println("develop: -format must be tiff or ppm")
		return subcommands.ExitUsageError
	}
	depth := rsraw.BitDepth(c.bits)
	path := f.Arg(0)

	raw, err := openRaw(path)
	if err != nil {
		log.Printf("%s: %v", path, err)
		return subcommands.ExitFailure
	}
	defer raw.Close()

	if err := raw.Unpack(); err != nil {
		log.Printf("%s: %v", path, err)
		return subcommands.ExitFailure
	}
	img, err := raw.Process(depth)
	if err != nil {
		log.Printf("%s: %v", path, err)
		return subcommands.ExitFailure
	}
	defer img.Close()

	out := c.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + "." + format
	}
	dst, err := os.Create(out)
	if err != nil {
		log.Printf("create %s: %v", out, err)
		return subcommands.ExitFailure
	}
	defer dst.Close()

	switch format {
	case "tiff":
		err = export.WriteTIFF(dst, img)
	case "ppm":
		err = export.WritePPM(dst, img)
	}
	if err != nil {
		log.Printf("write %s: %v", out, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s: %dx%d, %d channels, %d bits, %d bytes\n",
		out, img.Width(), img.Height(), img.Colors(), img.Bits(), img.DataSize())
	return subcommands.ExitSuccess
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&infoCmd{}, "")
	subcommands.Register(&thumbsCmd{}, "")
	subcommands.Register(&developCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
