package tax

// Built-in schedule names
const (
	ScheduleCurrent  = "current"
	ScheduleProposed = "proposed"
)

// CurrentSchedule returns the 2023-24 Australian resident rates
func CurrentSchedule() Schedule {
	return Schedule{
		Name:        ScheduleCurrent,
		Description: "2023-24 resident rates",
		Currency:    "AUD",
		Brackets: Table{
			Band(18200, 0),
			Band(45000, 0.19),
			Band(120000, 0.325),
			Band(180000, 0.37),
			Top(0.45),
		},
	}
}

// ProposedSchedule returns the 2024-25 Australian resident rates
func ProposedSchedule() Schedule {
	return Schedule{
		Name:        ScheduleProposed,
		Description: "2024-25 resident rates",
		Currency:    "AUD",
		Brackets: Table{
			Band(18200, 0),
			Band(45000, 0.16),
			Band(135000, 0.30),
			Band(190000, 0.37),
			Top(0.45),
		},
	}
}

// BuiltinSchedules returns fresh copies of the built-in schedules, current first
func BuiltinSchedules() []Schedule {
	return []Schedule{CurrentSchedule(), ProposedSchedule()}
}
