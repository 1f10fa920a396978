package status

import "strconv"

// JobStatus is the numeric status code reported by the driver app
type JobStatus int

const (
	// NotAccepted is when the job is still not accepted by the driver
	NotAccepted JobStatus = 0
	// Accepted is when the the job is accepted by the driver
	Accepted JobStatus = 1
	// OnTheWay is when the driver is on the way to the pickup point
	OnTheWay JobStatus = 2
	// PickupPoint is when the driver is in the pickup point
	PickupPoint JobStatus = 3
	// OnBoard is when the passenger is onboard
	OnBoard JobStatus = 4
	// Clear is when the job is cleared by the driver
	Clear JobStatus = 5
)

func (j JobStatus) String() string {
	return strconv.Itoa(int(j))
}

var jobStatusKeys = map[JobStatus]Key{
	NotAccepted: Offered,
	Accepted:    Assigned,
	OnTheWay:    EnRoute,
	PickupPoint: Arrived,
	OnBoard:     PassengerOnboard,
	Clear:       Completed,
}

// Busy reports whether the driver is between accepting a job and clearing it
func (j JobStatus) Busy() bool {
	return j >= Accepted && j < Clear
}
