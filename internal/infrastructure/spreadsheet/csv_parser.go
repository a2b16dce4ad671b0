package spreadsheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// CSVParser reads delimited text into rows of cells
type CSVParser struct {
	delimiter  rune
	lazyQuotes bool
	trimSpace  bool
}

// ParserOption is a functional option for CSVParser configuration
type ParserOption func(*CSVParser)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) ParserOption {
	return func(p *CSVParser) {
		p.delimiter = d
	}
}

// WithTrimSpace enables trimming of leading/trailing spaces from fields
func WithTrimSpace(trim bool) ParserOption {
	return func(p *CSVParser) {
		p.trimSpace = trim
	}
}

// NewCSVParser creates a new CSV parser
func NewCSVParser(opts ...ParserOption) *CSVParser {
	p := &CSVParser{
		delimiter:  ',',
		lazyQuotes: true,
		trimSpace:  true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// utf8BOM is the byte order mark some spreadsheet tools prepend
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse reads every record. Records may have different lengths.
func (p *CSVParser) Parse(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(len(utf8BOM))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	if err := validateUTF8(br); err != nil {
		return nil, err
	}

	reader := csv.NewReader(br)
	reader.Comma = p.delimiter
	reader.LazyQuotes = p.lazyQuotes
	reader.TrimLeadingSpace = p.trimSpace
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewImportError(ErrCodeImportInvalidFile,
				fmt.Sprintf("error reading row %d", len(rows)+1), err)
		}
		if p.trimSpace {
			for i := range record {
				record[i] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// validateUTF8 checks the first block of the content
func validateUTF8(r *bufio.Reader) error {
	const checkSize = 4096
	content, err := r.Peek(checkSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return fmt.Errorf("failed to read file for encoding validation: %w", err)
	}
	if len(content) == 0 {
		return ErrEmptyFile
	}
	if !utf8.Valid(trimPartialRune(content)) {
		return ErrInvalidEncoding
	}
	return nil
}

// trimPartialRune drops a multi-byte sequence cut off at the end of a peek window.
func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		c := b[len(b)-i]
		if utf8.RuneStart(c) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}
			break
		}
	}
	return b
}
