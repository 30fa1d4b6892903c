// Package model contains domain values passed between layers.
package model

// Element is one of the five classical elements.
type Element int

// Five elements in generation order.
const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

var elementNames = [...]string{"木", "火", "土", "金", "水"}

func (e Element) String() string {
	if e < Wood || e > Water {
		return "?"
	}
	return elementNames[e]
}

// Generates returns the element this element produces.
func (e Element) Generates() Element {
	return (e + 1) % 5
}

// GeneratedBy returns the element that produces this element.
func (e Element) GeneratedBy() Element {
	return (e + 4) % 5
}

// OvercomeBy returns the element that controls this element.
func (e Element) OvercomeBy() Element {
	return (e + 3) % 5
}

// Elements lists all five elements in canonical order.
func Elements() [5]Element {
	return [5]Element{Wood, Fire, Earth, Metal, Water}
}

// Stem is one of the ten heavenly stems, 甲=0 .. 癸=9.
type Stem int

var stemNames = [...]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

func (s Stem) String() string {
	if s < 0 || s > 9 {
		return "?"
	}
	return stemNames[s]
}

// Element returns the stem's element. Stems pair up within an element,
// so integer division by two walks the generation order.
func (s Stem) Element() Element {
	return Element(int(s) / 2)
}

// Branch is one of the twelve earthly branches, 子=0 .. 亥=11.
type Branch int

var branchNames = [...]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

func (b Branch) String() string {
	if b < 0 || b > 11 {
		return "?"
	}
	return branchNames[b]
}

var branchElements = [...]Element{
	Water, Earth, Wood, Wood, Earth, Fire,
	Fire, Earth, Metal, Metal, Earth, Water,
}

// Element returns the branch's primary element.
func (b Branch) Element() Element {
	return branchElements[b]
}

// HiddenStem is a stem concealed inside a branch with its classical weight.
type HiddenStem struct {
	Stem   Stem
	Weight float64
}

var hiddenStems = [12][]HiddenStem{
	{{9, 1.0}},                     // 子: 癸
	{{5, 0.6}, {9, 0.3}, {7, 0.1}}, // 丑: 己癸辛
	{{0, 0.6}, {2, 0.3}, {4, 0.1}}, // 寅: 甲丙戊
	{{1, 1.0}},                     // 卯: 乙
	{{4, 0.6}, {1, 0.3}, {9, 0.1}}, // 辰: 戊乙癸
	{{2, 0.6}, {6, 0.3}, {4, 0.1}}, // 巳: 丙庚戊
	{{3, 0.7}, {5, 0.3}},           // 午: 丁己
	{{5, 0.6}, {3, 0.3}, {1, 0.1}}, // 未: 己丁乙
	{{6, 0.6}, {8, 0.3}, {4, 0.1}}, // 申: 庚壬戊
	{{7, 1.0}},                     // 酉: 辛
	{{4, 0.6}, {7, 0.3}, {3, 0.1}}, // 戌: 戊辛丁
	{{8, 0.7}, {0, 0.3}},           // 亥: 壬甲
}

// HiddenStems returns the stems concealed in the branch, main qi first.
func (b Branch) HiddenStems() []HiddenStem {
	return hiddenStems[b]
}

// FiveCombination reports whether two stems form one of the five stem
// combinations and, if so, the element the pair transforms into.
func FiveCombination(a, b Stem) (Element, bool) {
	// combining stems sit five apart: 甲己土, 乙庚金, 丙辛水, 丁壬木, 戊癸火
	if a > b {
		a, b = b, a
	}
	if int(b)-int(a) != 5 {
		return 0, false
	}
	return [5]Element{Earth, Metal, Water, Wood, Fire}[a], true
}

// Pillar is a stem/branch pair.
type Pillar struct {
	Stem   Stem   `json:"stem"`
	Branch Branch `json:"branch"`
}

func (p Pillar) String() string {
	return p.Stem.String() + p.Branch.String()
}

// FourPillars is a complete eight-character chart.
type FourPillars struct {
	Year  Pillar `json:"year"`
	Month Pillar `json:"month"`
	Day   Pillar `json:"day"`
	Hour  Pillar `json:"hour"`
}

// Pillars returns the pillars in year, month, day, hour order.
func (fp FourPillars) Pillars() [4]Pillar {
	return [4]Pillar{fp.Year, fp.Month, fp.Day, fp.Hour}
}

// Branches returns the four branches in year, month, day, hour order.
func (fp FourPillars) Branches() [4]Branch {
	return [4]Branch{fp.Year.Branch, fp.Month.Branch, fp.Day.Branch, fp.Hour.Branch}
}

func (fp FourPillars) String() string {
	return fp.Year.String() + " " + fp.Month.String() + " " + fp.Day.String() + " " + fp.Hour.String()
}
