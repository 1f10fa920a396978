package grid

import "time"

// Sample returns the built in reservations that are shown when the store cannot be reached
func Sample() []ReservationRow {
	today := time.Now().UTC().Format("2006-01-02")

	records := []Record{
		sample("SAMPLE-1001", "Unassigned", "", today, "6:30 AM", "", "", "Sample Passenger A", "Airport Terminal 1", "Grand Hotel", "", 2, 2),
		sample("SAMPLE-1002", "On The Way", "In House", today, "7:15 AM", "D-1", "Sample Driver 1", "Sample Passenger B", "Harbor Office", "Central Station", "", 1, 0),
		sample("SAMPLE-1003", "Farm Out Assigned", "Farm Out", today, "8:00 AM", "", "Affiliate Driver", "Sample Passenger C", "Convention Center", "Airport Terminal 2", "Partner Limo Co", 4, 3),
		sample("SAMPLE-1004", "Passenger On Board", "Farm In", today, "9:45 AM", "D-2", "Sample Driver 2", "Sample Passenger D", "City Hospital", "Lakeside Residence", "Northern Affiliates", 1, 1),
		sample("SAMPLE-1005", "Completed", "In House", today, "5:00 AM", "D-3", "Sample Driver 3", "Sample Passenger E", "University Campus", "Airport Terminal 1", "", 3, 2),
		sample("SAMPLE-1006", "Quote", "", today, "12:30 PM", "", "", "Sample Passenger F", "Old Town", "Stadium", "", 6, 0),
	}

	rows := make([]ReservationRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, FromRecord(r))
	}
	return rows
}

func sample(confirmation, status, origin, date, clock, driverID, driver, passenger, pickup, dropoff, company string, passengers, luggage int) Record {
	return Record{
		ID:            &confirmation,
		Confirmation:  &confirmation,
		Status:        &status,
		Origin:        &origin,
		PickupDate:    &date,
		PickupTime:    &clock,
		DriverID:      &driverID,
		DriverName:    &driver,
		PassengerName: &passenger,
		PickupAddr:    &pickup,
		DropoffAddr:   &dropoff,
		OriginCompany: &company,
		Passengers:    &passengers,
		Luggage:       &luggage,
	}
}
