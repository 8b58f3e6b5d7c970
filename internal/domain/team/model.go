package team

// Team is a club referenced by the schedule.
type Team struct {
	ID    int64
	Name  string
	Short string
}
