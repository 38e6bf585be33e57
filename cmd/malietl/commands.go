package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/arloliu/malie"
	"github.com/arloliu/malie/bytecode"
	"github.com/arloliu/malie/editor"
	"github.com/arloliu/malie/format"
	"github.com/arloliu/malie/internal/collision"
	"github.com/arloliu/malie/project"
)

// InfoCmd shows where the regions of a container are.
type InfoCmd struct {
	File   string `arg:"" help:"Container file." type:"existingfile"`
	Disasm bool   `help:"Disassemble the bytecode block."`
}

func (c *InfoCmd) Run(g *Globals) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}

	opts, err := g.editorOptions()
	if err != nil {
		return err
	}
	ed, err := editor.New(opts...)
	if err != nil {
		return err
	}
	if _, err := ed.Open(data); err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}

	s := ed.Session()
	r := s.Regions()
	g.printf("%s\n", g.colors.heading.Sprint(c.File))
	g.printf("  size        %d bytes\n", s.Size())
	g.printf("  strategy    %s\n", s.Strategy())
	g.printf("  header      [0x0,0x%X)\n", r.LabelStart)
	g.printf("  labels      [0x%X,0x%X)  %d labels, %d editable\n", r.LabelStart, r.LabelEnd, ed.LabelCount(), ed.FilteredLabelCount())
	g.printf("  bytecode    [0x%X,0x%X)  %d bytes\n", r.LabelEnd, r.OffsetTablePos, r.BytecodeSize())
	g.printf("  strings     table 0x%X, payload 0x%X  %d strings, %d segments\n", r.OffsetTablePos, r.StringTablePos, ed.StringCount(), ed.SegmentCount())

	var jumps, unknown int
	for in := range bytecode.Walk(s.Bytecode()) {
		if in.Opcode.IsJump() {
			jumps++
		}
		if !in.Known {
			unknown++
		}
	}
	g.printf("  jumps       %d\n", jumps)

	tracker := collision.NewTracker()
	for i, text := range s.Texts()[s.LabelCount():] {
		tracker.TrackText(i, text)
	}
	g.printf("  unique      %d strings (%d repeated)\n", tracker.Unique(), tracker.Duplicates())

	if s.Truncated() {
		g.printf("  %s label block cut short at bytecode-like data (located end 0x%X)\n",
			g.colors.warn.Sprint("warning:"), s.Located().LabelEnd)
	}
	if unknown > 0 {
		g.printf("  %s %d unknown opcodes in bytecode\n", g.colors.warn.Sprint("warning:"), unknown)
	}

	if c.Disasm {
		for in := range bytecode.Walk(s.Bytecode()) {
			in.Pos += r.LabelEnd
			g.printf("%s\n", in)
		}
	}

	return nil
}

// DumpCmd writes a translation document.
type DumpCmd struct {
	File        string `arg:"" help:"Container file." type:"existingfile"`
	Output      string `short:"o" required:"" help:"Document to write." type:"path"`
	Filter      bool   `help:"Hide engine-internal labels (overrides editor.filter)."`
	Format      string `help:"Document format: yaml or cbor (overrides dump.format)."`
	Compression string `help:"Compression: none, zstd, s2 or lz4 (overrides dump.compression)."`
}

func (c *DumpCmd) Run(g *Globals) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}

	f := g.cfg.DumpFormat()
	if c.Format != "" {
		if f, err = format.ParseDumpFormat(c.Format); err != nil {
			return err
		}
	}
	ct := g.cfg.Compression()
	if c.Compression != "" {
		if ct, err = format.ParseCompression(c.Compression); err != nil {
			return err
		}
	}

	opts, err := g.editorOptions()
	if err != nil {
		return err
	}
	if c.Filter {
		opts = append(opts, editor.WithFilter(true))
	}
	ed, err := editor.New(opts...)
	if err != nil {
		return err
	}
	if _, err := ed.Open(data); err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}

	doc, err := project.New(filepath.Base(c.File), ed)
	if err != nil {
		return err
	}
	out, err := project.Marshal(doc, f, ct)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Output, out, 0o644); err != nil { //nolint:gosec
		return err
	}

	g.printf("wrote %s: %d labels, %d strings (%s, %s, %d bytes)\n",
		c.Output, len(doc.Labels), len(doc.Strings), f, ct, len(out))

	return nil
}

// ApplyCmd writes a translated container.
type ApplyCmd struct {
	File    string `arg:"" help:"Container file." type:"existingfile"`
	Project string `arg:"" help:"Translation document." type:"existingfile"`
	Output  string `short:"o" required:"" help:"Container to write." type:"path"`
}

func (c *ApplyCmd) Run(g *Globals) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	doc, err := readDocument(c.Project)
	if err != nil {
		return err
	}

	opts, err := g.editorOptions()
	if err != nil {
		return err
	}
	out, stats, err := malie.Apply(data, doc, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Output, out, 0o644); err != nil { //nolint:gosec
		return err
	}

	g.printf("wrote %s: %d bytes (label block %+d)\n", c.Output, stats.Size, stats.LabelDelta)
	g.printf("  moved labels  %d\n", stats.Moved)
	g.printf("  jumps         %d (%d patched)\n", stats.Jumps, stats.Patched)
	if stats.Missing > 0 {
		g.printf("  %s %d jumps into the label block had no label to follow\n", g.colors.warn.Sprint("warning:"), stats.Missing)
	}
	if stats.Unknown > 0 {
		g.printf("  %s %d unknown opcodes in bytecode\n", g.colors.warn.Sprint("warning:"), stats.Unknown)
	}

	return nil
}

// DiffCmd prints the edits a document makes.
type DiffCmd struct {
	File    string `arg:"" help:"Container file the document was dumped from." type:"existingfile"`
	Project string `arg:"" help:"Translation document." type:"existingfile"`
}

func (c *DiffCmd) Run(g *Globals) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	doc, err := readDocument(c.Project)
	if err != nil {
		return err
	}

	opts, err := g.editorOptions(editor.WithFilter(doc.Filter))
	if err != nil {
		return err
	}
	ed, err := editor.New(opts...)
	if err != nil {
		return err
	}
	if _, err := ed.Open(data); err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}
	if _, err := doc.Apply(ed); err != nil {
		return err
	}

	changes := project.Diff(doc)
	for _, ch := range changes {
		where := strconv.Itoa(ch.Index)
		if ch.Kind == project.ChangeString && ch.Segment >= 0 {
			where += "." + strconv.Itoa(ch.Segment)
		}
		g.printf("%s %s\n  %s\n", g.colors.heading.Sprint(ch.Kind), where, g.colors.renderDiff(ch.Diffs))
	}
	g.printf("%d changes\n", len(changes))

	return nil
}

// VerifyCmd checks round-trip identity.
type VerifyCmd struct {
	Files []string `arg:"" help:"Container files."`
}

var errVerifyFailed = errors.New("verification failed")

func (c *VerifyCmd) Run(g *Globals) error {
	opts, err := g.editorOptions()
	if err != nil {
		return err
	}

	failed := 0
	for _, file := range c.Files {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}

		if err := malie.Verify(data, opts...); err != nil {
			failed++
			g.printf("%s %s: %v\n", g.colors.removed.Sprint("FAIL"), file, err)

			continue
		}
		g.printf("%s %s\n", g.colors.ok.Sprint("OK"), file)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", errVerifyFailed, failed, len(c.Files))
	}

	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	g.printf("malietl %s\n", version)
	return nil
}

func readDocument(path string) (*project.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := project.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}
