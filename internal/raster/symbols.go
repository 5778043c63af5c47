package raster

import (
	"sort"
	"strings"
)

// latexSymbols maps LaTeX commands to the Unicode characters the rasterizer
// draws in their place. The table covers the symbols that commonly appear in
// wiki math fences; unknown commands pass through literally.
var latexSymbols = map[string]string{
	// Greek letters
	`\alpha`: "α", `\beta`: "β", `\gamma`: "γ", `\delta`: "δ",
	`\epsilon`: "ε", `\zeta`: "ζ", `\eta`: "η", `\theta`: "θ",
	`\iota`: "ι", `\kappa`: "κ", `\lambda`: "λ", `\mu`: "μ",
	`\nu`: "ν", `\xi`: "ξ", `\pi`: "π", `\rho`: "ρ",
	`\sigma`: "σ", `\tau`: "τ", `\upsilon`: "υ", `\phi`: "φ",
	`\chi`: "χ", `\psi`: "ψ", `\omega`: "ω",
	`\Gamma`: "Γ", `\Delta`: "Δ", `\Theta`: "Θ", `\Lambda`: "Λ",
	`\Xi`: "Ξ", `\Pi`: "Π", `\Sigma`: "Σ", `\Upsilon`: "Υ",
	`\Phi`: "Φ", `\Psi`: "Ψ", `\Omega`: "Ω",

	// Operators and relations
	`\times`: "×", `\div`: "÷", `\cdot`: "⋅", `\pm`: "±", `\mp`: "∓",
	`\leq`: "≤", `\geq`: "≥", `\neq`: "≠", `\approx`: "≈", `\equiv`: "≡",
	`\sim`: "∼", `\propto`: "∝", `\ll`: "≪", `\gg`: "≫",

	// Arrows
	`\to`: "→", `\rightarrow`: "→", `\leftarrow`: "←",
	`\Rightarrow`: "⇒", `\Leftarrow`: "⇐", `\leftrightarrow`: "↔",
	`\mapsto`: "↦",

	// Big operators and calculus
	`\sum`: "∑", `\prod`: "∏", `\int`: "∫", `\oint`: "∮",
	`\partial`: "∂", `\nabla`: "∇", `\infty`: "∞", `\sqrt`: "√",

	// Set theory and logic
	`\in`: "∈", `\notin`: "∉", `\subset`: "⊂", `\supset`: "⊃",
	`\subseteq`: "⊆", `\supseteq`: "⊇", `\cup`: "∪", `\cap`: "∩",
	`\emptyset`: "∅", `\forall`: "∀", `\exists`: "∃",
	`\land`: "∧", `\lor`: "∨", `\neg`: "¬",

	// Dots and spacing
	`\cdots`: "⋯", `\ldots`: "…", `\dots`: "…",
	`\quad`: "  ", `\qquad`: "    ", `\,`: " ", `\;`: " ",

	// Delimiter sizing commands carry no glyph of their own.
	`\left`: "", `\right`: "",
}

// superscriptDigits maps ASCII digits (and sign) to superscript forms for
// simple ^n exponents.
var superscriptDigits = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', 'n': 'ⁿ',
}

// subscriptDigits maps ASCII digits (and sign) to subscript forms for simple
// _n indices.
var subscriptDigits = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'+': '₊', '-': '₋',
}

// sortedCommands returns the symbol commands longest-first, so that \leq is
// substituted before \le would match inside it.
func sortedCommands() []string {
	commands := make([]string, 0, len(latexSymbols))
	for command := range latexSymbols {
		commands = append(commands, command)
	}
	sort.Slice(commands, func(i, j int) bool {
		if len(commands[i]) != len(commands[j]) {
			return len(commands[i]) > len(commands[j])
		}
		return commands[i] < commands[j]
	})
	return commands
}

var commandReplacer = func() *strings.Replacer {
	pairs := make([]string, 0, 2*len(latexSymbols))
	for _, command := range sortedCommands() {
		pairs = append(pairs, command, latexSymbols[command])
	}
	return strings.NewReplacer(pairs...)
}()

// ApproximateExpression converts a LaTeX math expression into plain Unicode
// text suitable for drawing with an ordinary font face: known commands become
// their Unicode equivalents, simple one-character exponents and indices
// become superscript/subscript glyphs, grouping braces and math delimiters
// are dropped and fractions flatten to a/b. This is an approximation of
// display math, not a typesetter.
func ApproximateExpression(expression string) string {
	s := strings.TrimSpace(expression)
	s = strings.Trim(s, "$")
	// Fractions flatten to a/b before grouping braces are dropped.
	s = strings.ReplaceAll(s, `\frac`, "")
	s = strings.ReplaceAll(s, "}{", "/")
	s = commandReplacer.Replace(s)
	s = convertScripts(s, '^', superscriptDigits)
	s = convertScripts(s, '_', subscriptDigits)
	s = strings.Map(func(r rune) rune {
		if r == '{' || r == '}' {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// convertScripts rewrites marker-introduced scripts (^2, ^{12}, _i) using the
// given glyph table. Characters without a script form stay in place with the
// marker dropped.
func convertScripts(s string, marker byte, glyphs map[rune]rune) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != marker || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}

		arg := string(s[i+1])
		advance := 1
		if s[i+1] == '{' {
			if end := strings.IndexByte(s[i+1:], '}'); end > 0 {
				arg = s[i+2 : i+1+end]
				advance = end + 1
			}
		}

		for _, r := range arg {
			if g, ok := glyphs[r]; ok {
				b.WriteRune(g)
			} else {
				b.WriteRune(r)
			}
		}
		i += advance
	}
	return b.String()
}
