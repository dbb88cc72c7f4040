package model

// MaxLevel is the terminal progression level.
const MaxLevel = 100

// LevelThresholds maps each level to the minimum cumulative experience it
// requires. Thresholds strictly increase with level; level 1 starts at 0.
var LevelThresholds = map[int]int{
	1: 0, 2: 100, 3: 250, 4: 500, 5: 1000,
	6: 2000, 7: 3500, 8: 5500, 9: 8000, 10: 11000,
	11: 15000, 12: 20000, 13: 26000, 14: 33000, 15: 41000,
	16: 50000, 17: 60000, 18: 71000, 19: 83000, 20: 96000,
	21: 110000, 22: 125000, 23: 141000, 24: 158000, 25: 176000,
	26: 195000, 27: 215000, 28: 236000, 29: 258000, 30: 281000,
	31: 305000, 32: 330000, 33: 356000, 34: 383000, 35: 411000,
	36: 440000, 37: 470000, 38: 501000, 39: 533000, 40: 566000,
	41: 600000, 42: 635000, 43: 671000, 44: 708000, 45: 746000,
	46: 785000, 47: 825000, 48: 866000, 49: 908000, 50: 951000,
	51: 995000, 52: 1040000, 53: 1086000, 54: 1133000, 55: 1181000,
	56: 1230000, 57: 1280000, 58: 1331000, 59: 1383000, 60: 1436000,
	61: 1490000, 62: 1545000, 63: 1601000, 64: 1658000, 65: 1716000,
	66: 1775000, 67: 1835000, 68: 1896000, 69: 1958000, 70: 2021000,
	71: 2085000, 72: 2150000, 73: 2216000, 74: 2283000, 75: 2351000,
	76: 2420000, 77: 2490000, 78: 2561000, 79: 2633000, 80: 2706000,
	81: 2780000, 82: 2855000, 83: 2931000, 84: 3008000, 85: 3086000,
	86: 3165000, 87: 3245000, 88: 3326000, 89: 3408000, 90: 3491000,
	91: 3575000, 92: 3660000, 93: 3746000, 94: 3833000, 95: 3921000,
	96: 4010000, 97: 4100000, 98: 4191000, 99: 4283000, 100: 4376000,
}

// LevelTitles is the sparse level→display-title table. The effective title
// for level L is the title at the highest defined level ≤ L.
var LevelTitles = map[int]string{
	1:   "여행 입문자",
	5:   "여행 애호가",
	10:  "여행 마니아",
	15:  "여행 전문가",
	20:  "여행 달인",
	25:  "여행 고수",
	30:  "여행 명인",
	35:  "여행 대가",
	40:  "여행 장인",
	45:  "여행 거장",
	50:  "여행 마스터",
	60:  "여행 그랜드마스터",
	70:  "여행 레전드",
	80:  "여행 신",
	90:  "여행 초월자",
	100: "여행 불멸자",
}

// ExpAction names an experience-earning action.
type ExpAction string

const (
	ActionPhotoUpload     ExpAction = "photo_upload"
	ActionLikeReceived    ExpAction = "like_received"
	ActionCommentReceived ExpAction = "comment_received"
	ActionCommentWritten  ExpAction = "comment_written"
	ActionRegionVisited   ExpAction = "region_visited"
	ActionBadgeLow        ExpAction = "badge_low"
	ActionBadgeMedium     ExpAction = "badge_medium"
	ActionBadgeHigh       ExpAction = "badge_high"
	ActionDailyTitle      ExpAction = "daily_title"
	ActionProfileComplete ExpAction = "profile_complete"
	ActionLoginStreak     ExpAction = "login_streak"
)

// ExpRewards is the fixed action→experience reward table.
var ExpRewards = map[ExpAction]int{
	ActionPhotoUpload:     50,
	ActionLikeReceived:    5,
	ActionCommentReceived: 10,
	ActionCommentWritten:  3,
	ActionRegionVisited:   20,
	ActionBadgeLow:        100,
	ActionBadgeMedium:     300,
	ActionBadgeHigh:       500,
	ActionDailyTitle:      200,
	ActionProfileComplete: 30,
	ActionLoginStreak:     15,
}

// BadgeActions maps a badge difficulty to its award action.
var BadgeActions = map[BadgeDifficulty]ExpAction{
	DifficultyLow:    ActionBadgeLow,
	DifficultyMedium: ActionBadgeMedium,
	DifficultyHigh:   ActionBadgeHigh,
}

// LevelInfo is the derived level state served to profile screens.
type LevelInfo struct {
	Level          int    `json:"level"`
	Title          string `json:"title"`
	TotalExp       int    `json:"total_exp"`
	ExpInLevel     int    `json:"exp_in_level"`
	ExpToNextLevel int    `json:"exp_to_next_level"`
	Progress       int    `json:"progress"`
}

// ExperienceGrant reports the outcome of a nominal experience grant. The
// grant is informational: the underlying activity fact is the source of
// truth, so repeating the call without a new fact does not change state.
type ExperienceGrant struct {
	Action    ExpAction `json:"action"`
	Granted   int       `json:"granted"`
	TotalExp  int       `json:"total_exp"`
	LeveledUp bool      `json:"leveled_up"`
	NewLevel  int       `json:"new_level,omitempty"`
}
