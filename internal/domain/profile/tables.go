package profile

import "github.com/siuwai/hehun/internal/domain/model"

// pillarWeights weight the year, month, day, and hour pillars when
// accumulating elemental presence. The month commands the season and
// weighs heaviest; the day carries the self.
var pillarWeights = [4]float64{1.0, 1.8, 1.5, 1.2}

// monthStrength grades how strongly each month branch supports a day
// element: 1.0 in full command, 0 in dead season.
var monthStrength = [5][12]float64{
	// 子 丑 寅 卯 辰 巳 午 未 申 酉 戌 亥
	{0.6, 0.3, 1.0, 1.0, 0.7, 0.3, 0.0, 0.0, 0.0, 0.0, 0.0, 0.8}, // 木
	{0.0, 0.0, 0.8, 0.6, 0.3, 1.0, 1.0, 0.7, 0.0, 0.0, 0.3, 0.0}, // 火
	{0.0, 1.0, 0.3, 0.0, 1.0, 0.7, 0.7, 1.0, 0.3, 0.0, 1.0, 0.0}, // 土
	{0.0, 0.8, 0.0, 0.0, 0.3, 0.6, 0.0, 0.0, 1.0, 1.0, 0.7, 0.0}, // 金
	{1.0, 0.7, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.8, 0.6, 0.0, 1.0}, // 水
}

// Branch-indexed star tables keyed by the year branch.
var (
	hongLuan = [12]model.Branch{6, 5, 4, 3, 2, 1, 0, 11, 10, 9, 8, 7}
	tianXi   = [12]model.Branch{2, 1, 0, 11, 10, 9, 8, 7, 6, 5, 4, 3}

	// jiangXing maps the year branch to its triad's general star.
	jiangXing = [12]model.Branch{0, 9, 6, 3, 0, 9, 6, 3, 0, 9, 6, 3}

	// guChen and guaSu group year branches by season.
	guChen = [12]model.Branch{2, 2, 5, 5, 5, 8, 8, 8, 11, 11, 11, 2}
	guaSu  = [12]model.Branch{10, 10, 1, 1, 1, 4, 4, 4, 7, 7, 7, 10}
)

// Stem-indexed star tables keyed by the day stem.
var (
	tianYi = [10][2]model.Branch{
		{1, 7}, {0, 8}, {11, 9}, {11, 9}, {1, 7},
		{0, 8}, {1, 7}, {2, 6}, {2, 6}, {2, 6},
	}
	wenChang = [10]model.Branch{5, 6, 8, 9, 8, 9, 11, 0, 2, 3}
)

// yangRen exists only for the five yang stems.
var yangRen = map[model.Stem]model.Branch{
	0: 3,  // 甲 -> 卯
	2: 6,  // 丙 -> 午
	4: 6,  // 戊 -> 午
	6: 9,  // 庚 -> 酉
	8: 0,  // 壬 -> 子
}
