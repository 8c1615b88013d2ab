package ilp

import (
	"bufio"
	"io"
	"math"
	"strconv"
)

// lpLineWidth wraps long expressions; CPLEX readers cap lines at 510 chars.
const lpLineWidth = 200

// WriteLP writes m in CPLEX LP format:
//
//	\ Model <name>
//	Maximize
//	 obj: z_0 + z_1
//	Subject To
//	 excl_0: y_0,0 + y_0,1 <= 1
//	Bounds
//	 q_0 >= 0
//	Binaries
//	 y_0,0
//	Generals
//	 q_0
//	End
//
// Binary variables are listed under Binaries only (their [0,1] bounds are
// implicit); integer variables get an explicit Bounds line.
func WriteLP(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)
	lw := &lpWriter{w: bw, m: m}

	lw.line(`\ Model ` + m.name)
	if m.obj.Direction == Maximize {
		lw.line("Maximize")
	} else {
		lw.line("Minimize")
	}
	lw.expr(" obj:", m.obj.Expr)
	lw.end()

	lw.line("Subject To")
	for _, c := range m.cons {
		lw.expr(" "+c.Name+":", c.Expr)
		lw.word(c.Sense.String())
		lw.word(fmtNum(c.RHS))
		lw.end()
	}

	var hasGenerals bool
	lw.line("Bounds")
	for _, v := range m.vars {
		if v.Domain == Binary {
			continue
		}
		hasGenerals = true
		if math.IsInf(v.Upper, 1) {
			lw.line(" " + v.Name + " >= " + fmtNum(v.Lower))
		} else {
			lw.line(" " + fmtNum(v.Lower) + " <= " + v.Name + " <= " + fmtNum(v.Upper))
		}
	}

	lw.line("Binaries")
	for _, v := range m.vars {
		if v.Domain == Binary {
			lw.line(" " + v.Name)
		}
	}
	if hasGenerals {
		lw.line("Generals")
		for _, v := range m.vars {
			if v.Domain != Binary {
				lw.line(" " + v.Name)
			}
		}
	}
	lw.line("End")

	if lw.err != nil {
		return lw.err
	}

	return bw.Flush()
}

// lpWriter tracks the current line length and the first write error.
type lpWriter struct {
	w   *bufio.Writer
	m   *Model
	col int
	err error
}

func (l *lpWriter) raw(s string) {
	if l.err != nil {
		return
	}
	_, l.err = l.w.WriteString(s)
	l.col += len(s)
}

func (l *lpWriter) line(s string) {
	l.raw(s)
	l.end()
}

func (l *lpWriter) end() {
	l.raw("\n")
	l.col = 0
}

// word appends " s", wrapping onto a continuation line when too long.
func (l *lpWriter) word(s string) {
	if l.col+1+len(s) > lpLineWidth {
		l.end()
		l.raw("  ")
	}
	l.raw(" " + s)
}

// expr writes "label t1 ± t2 …". An empty expression is written as
// "0 <first var>" so the line stays parseable.
func (l *lpWriter) expr(label string, e Expr) {
	l.raw(label)
	if len(e) == 0 {
		if len(l.m.vars) > 0 {
			l.word("0")
			l.word(l.m.vars[0].Name)
		}

		return
	}
	for i, t := range e {
		coef := t.Coef
		switch {
		case coef < 0:
			l.word("-")
			coef = -coef
		case i > 0:
			l.word("+")
		}
		if coef != 1 {
			l.word(fmtNum(coef))
		}
		l.word(l.m.vars[t.Var].Name)
	}
}

// fmtNum formats integral values without a decimal point.
func fmtNum(x float64) string {
	if x == math.Trunc(x) && math.Abs(x) < 1e15 {
		return strconv.FormatInt(int64(x), 10)
	}

	return strconv.FormatFloat(x, 'g', -1, 64)
}
