package service

// Title ladder based on all-time points. Titles never demote, the
// thresholds only ever move a student up.
const (
	PointsGuruBesar   = 20000
	PointsSarjana     = 8000
	PointsCendekiawan = 3000
	PointsJuaraKelas  = 600
	PointsPelajar     = 100
)

// TitleFor maps an all-time point total to the display title shown on
// leaderboard entries.
func TitleFor(allTimePoints int) string {
	switch {
	case allTimePoints >= PointsGuruBesar:
		return "Guru Besar"
	case allTimePoints >= PointsSarjana:
		return "Sarjana"
	case allTimePoints >= PointsCendekiawan:
		return "Cendekiawan"
	case allTimePoints >= PointsJuaraKelas:
		return "Juara Kelas"
	case allTimePoints >= PointsPelajar:
		return "Pelajar"
	default:
		return "Pemula"
	}
}

// Weekly activity thresholds for the spotlight label.
const (
	WeeklyOnFire   = 100
	WeeklyTrending = 50
	WeeklyActive   = 20
)

// ActivityLabelFor gives recent-activity context next to the permanent
// title, or an empty string for quiet weeks.
func ActivityLabelFor(weeklyPoints int) string {
	switch {
	case weeklyPoints >= WeeklyOnFire:
		return "On Fire!"
	case weeklyPoints >= WeeklyTrending:
		return "Trending"
	case weeklyPoints >= WeeklyActive:
		return "Active"
	default:
		return ""
	}
}
