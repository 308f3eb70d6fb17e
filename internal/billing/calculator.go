package billing

// ProrateFee charges the lessons a student can attend. The per-lesson price is floored
// and the remainder of the division stays on the charge, so a full month is exactly the fee.
func ProrateFee(monthlyFee int64, planned, charged int) int64 {
	if planned <= 0 {
		return monthlyFee
	}
	if charged <= 0 {
		return 0
	}
	if charged > planned {
		charged = planned
	}
	perLesson := monthlyFee / int64(planned)
	remainder := monthlyFee - perLesson*int64(planned)
	return perLesson*int64(charged) + remainder
}

// InitialAmount is the rounded amount due for a student joining mid-month
func InitialAmount(monthlyFee int64, count LessonCount) int64 {
	return RoundToThousand(ProrateFee(monthlyFee, count.Planned, count.Charged))
}
