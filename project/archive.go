package project

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/arloliu/malie/compress"
	"github.com/arloliu/malie/errs"
	"github.com/arloliu/malie/format"
	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
)

// Envelope layout.
const (
	EnvelopeMagic   = "MLTP"
	EnvelopeVersion = 1
	EnvelopeSize    = 8
)

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	if cborEnc, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(fmt.Sprintf("cbor encode mode: %v", err))
	}
	if cborDec, err = (cbor.DecOptions{ExtraReturnErrors: cbor.ExtraDecErrorUnknownField}).DecMode(); err != nil {
		panic(fmt.Sprintf("cbor decode mode: %v", err))
	}
}

// yamlEncOpts double-quotes every string value. Plain and block scalars do not
// round-trip text such as ".inf", "null" or "a\r\nb".
var yamlEncOpts = []yaml.EncodeOption{
	yaml.CustomMarshaler[string](func(s string) ([]byte, error) {
		return []byte(strconv.Quote(s)), nil
	}),
}

// Header is the decoded archive envelope.
type Header struct {
	Version     uint8
	Format      format.DumpFormat
	Compression format.CompressionType
}

// Marshal serializes doc. YAML without compression is returned bare; any other
// combination is wrapped in an envelope.
func Marshal(doc *Document, f format.DumpFormat, c format.CompressionType) ([]byte, error) {
	var (
		body []byte
		err  error
	)
	switch f {
	case format.DumpYAML:
		body, err = yaml.MarshalWithOptions(doc, yamlEncOpts...)
	case format.DumpCBOR:
		body, err = cborEnc.Marshal(doc)
	default:
		return nil, fmt.Errorf("%w: dump format %s", errs.ErrInvalidEnvelope, f)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", f, err)
	}

	if f == format.DumpYAML && c == format.CompressionNone {
		return body, nil
	}

	compressed, _, err := compress.Compress(c, body)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, EnvelopeSize+len(compressed))
	out = append(out, EnvelopeMagic...)
	out = append(out, EnvelopeVersion, byte(f), byte(c), 0)

	return append(out, compressed...), nil
}

// IsArchive reports whether data starts with the envelope magic.
func IsArchive(data []byte) bool {
	return bytes.HasPrefix(data, []byte(EnvelopeMagic))
}

// ParseHeader decodes the envelope at the start of data.
func ParseHeader(data []byte) (Header, error) {
	if !IsArchive(data) {
		return Header{}, fmt.Errorf("%w: missing %s magic", errs.ErrInvalidEnvelope, EnvelopeMagic)
	}
	if len(data) < EnvelopeSize {
		return Header{}, fmt.Errorf("%w: %d byte header", errs.ErrInvalidEnvelope, len(data))
	}

	h := Header{
		Version:     data[4],
		Format:      format.DumpFormat(data[5]),
		Compression: format.CompressionType(data[6]),
	}
	if h.Version != EnvelopeVersion {
		return h, fmt.Errorf("%w: envelope version %d", errs.ErrUnsupportedVersion, h.Version)
	}

	return h, nil
}

// Unmarshal decodes a document written by Marshal. Data without the envelope
// magic is read as plain YAML.
func Unmarshal(data []byte) (*Document, error) {
	f := format.DumpYAML
	body := data

	if IsArchive(data) {
		h, err := ParseHeader(data)
		if err != nil {
			return nil, err
		}
		if body, err = compress.Decompress(h.Compression, data[EnvelopeSize:]); err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidEnvelope, err)
		}
		f = h.Format
	}

	doc := &Document{}
	var err error
	switch f {
	case format.DumpYAML:
		err = yaml.UnmarshalWithOptions(body, doc, yaml.Strict())
	case format.DumpCBOR:
		err = cborDec.Unmarshal(body, doc)
	default:
		return nil, fmt.Errorf("%w: dump format %d", errs.ErrInvalidEnvelope, f)
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", f, err)
	}

	if doc.Version != DocumentVersion {
		return nil, fmt.Errorf("%w: document version %d", errs.ErrUnsupportedVersion, doc.Version)
	}

	return doc, nil
}
