package token

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
)

type PosDoc struct {
	d []byte
	n []int
}

// NewPosDoc indexes the newlines of d.
func NewPosDoc(d []byte) *PosDoc {
	p := &PosDoc{d: d}
	off := 0
	for {
		i := bytes.IndexByte(d[off:], '\n')
		if i == -1 {
			break
		}
		p.nl(off + i)
		off += i + 1
	}
	return p
}

func (p *PosDoc) nl(i int) {
	if len(p.n) > 0 && p.n[len(p.n)-1] == i {
		return
	}
	p.n = append(p.n, i)
}

func (p *PosDoc) LineCol(off int) (int, int) {
	N := len(p.n)
	di := sort.Search(N, func(i int) bool {
		return p.n[i] >= off
	})
	if di == 0 {
		return 0, off
	}
	return di, off - p.n[di-1] - 1
}

// LineStart returns the offset of the first byte of the line containing off.
func (p *PosDoc) LineStart(off int) int {
	l, c := p.LineCol(off)
	if l == 0 {
		return 0
	}
	return off - c
}

// Indent returns the leading blanks of the line containing off.
func (p *PosDoc) Indent(off int) string {
	i := p.LineStart(off)
	j := i
	for j < len(p.d) && (p.d[j] == ' ' || p.d[j] == '\t') {
		j++
	}
	return string(p.d[i:j])
}

func (d *PosDoc) Pos(i int) *Pos {
	return &Pos{
		I: i,
		D: d,
	}
}

func (p *PosDoc) end() *Pos {
	return &Pos{
		I: len(p.d),
		D: p,
	}
}

type Pos struct {
	I int
	D *PosDoc
}

func (p *Pos) LineCol() (int, int) {
	return p.D.LineCol(p.I)
}

func (p *Pos) Line() int {
	l, _ := p.LineCol()
	return l
}

func (p *Pos) Col() int {
	_, c := p.LineCol()
	return c
}

func (p Pos) String() string {
	sample := string(p.D.d[max(0, p.I-5):min(p.I+5, len(p.D.d))])
	sample = strconv.Quote(sample)
	sample = sample[1 : len(sample)-1]
	return fmt.Sprintf("`...%s...` at offset %d (line=%d, col=%d)", sample, p.I, p.Line()+1, p.Col()+1)
}
