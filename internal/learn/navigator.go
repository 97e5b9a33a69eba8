package learn

// Advance moves the learning cursor one item forward, staying within [0, count-1]
func Advance(index, count int) int {
	return Clamp(index+1, count)
}

// Retreat moves the learning cursor one item back, staying within [0, count-1]
func Retreat(index, count int) int {
	return Clamp(index-1, count)
}

// Clamp bounds index to a list of count items. An empty list always yields 0.
func Clamp(index, count int) int {
	if count <= 0 || index < 0 {
		return 0
	}
	if index > count-1 {
		return count - 1
	}
	return index
}
