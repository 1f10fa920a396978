package status

// aliases maps normalized upstream spellings to canonical keys
var aliases = map[string]Key{
	"unassigned":   Unassigned,
	"not_assigned": Unassigned,
	"new":          Unassigned,
	"pending":      Unassigned,
	"open":         Unassigned,
	"created":      Unassigned,
	"requested":    Unassigned,
	"booked":       Unassigned,
	"reserved":     Unassigned,

	"offered":      Offered,
	"offer":        Offered,
	"sent":         Offered,
	"sent_offer":   Offered,
	"not_accepted": Offered,
	"awaiting":     Offered,

	"assigned":         Assigned,
	"accepted":         Assigned,
	"confirmed":        Assigned,
	"driver_assigned":  Assigned,
	"created_assigned": Assigned,

	"in_house":          InHouse,
	"inhouse":           InHouse,
	"in_house_assigned": InHouse,
	"house":             InHouse,

	"enroute":     EnRoute,
	"en_route":    EnRoute,
	"on_the_way":  EnRoute,
	"onthe_way":   EnRoute,
	"dispatched":  EnRoute,
	"on_route":    EnRoute,
	"driving":     EnRoute,
	"departed":    EnRoute,
	"heading_out": EnRoute,

	"arrived":         Arrived,
	"on_location":     Arrived,
	"onlocation":      Arrived,
	"on_scene":        Arrived,
	"at_pickup":       Arrived,
	"pickup_point":    Arrived,
	"waiting":         Arrived,
	"driver_arrived":  Arrived,
	"arrived_pickup":  Arrived,
	"at_pickup_point": Arrived,

	"passenger_onboard":  PassengerOnboard,
	"passenger_on_board": PassengerOnboard,
	"pob":                PassengerOnboard,
	"onboard":            PassengerOnboard,
	"on_board":           PassengerOnboard,
	"in_progress":        PassengerOnboard,
	"customer_in_car":    PassengerOnboard,
	"picked_up":          PassengerOnboard,

	"completed": Completed,
	"complete":  Completed,
	"done":      Completed,
	"finished":  Completed,
	"clear":     Completed,
	"cleared":   Completed,
	"closed":    Completed,
	"settled":   Completed,
	"dropped":   Completed,
	"drop_off":  Completed,

	"declined":        Declined,
	"rejected":        Declined,
	"driver_declined": Declined,
	"refused":         Declined,

	"cancelled":          Cancelled,
	"canceled":           Cancelled,
	"cancel":             Cancelled,
	"void":               Cancelled,
	"voided":             Cancelled,
	"late_cancel":        Cancelled,
	"late_cancelled":     Cancelled,
	"cancelled_by_user":  Cancelled,
	"cancelled_by_admin": Cancelled,

	"no_show":  NoShow,
	"noshow":   NoShow,
	"no_shown": NoShow,

	"quote":         Quote,
	"quoted":        Quote,
	"quote_request": Quote,
	"estimate":      Quote,

	"farm_out_offered":          FarmOutOffered,
	"farmout_offered":           FarmOutOffered,
	"farmed_out":                FarmOutOffered,
	"farm_out":                  FarmOutOffered,
	"farmout":                   FarmOutOffered,
	"affiliate_offered":         FarmOutOffered,
	"created_farm_out_offered":  FarmOutOffered,
	"created_farmout_offered":   FarmOutOffered,
	"farm_out_assigned":         FarmOutAssigned,
	"farmout_assigned":          FarmOutAssigned,
	"created_farm_out_assigned": FarmOutAssigned,
	"created_farmout_assigned":  FarmOutAssigned,
	"farm_out_accepted":         FarmOutAssigned,
	"farmout_accepted":          FarmOutAssigned,
	"affiliate_assigned":        FarmOutAssigned,
	"affiliate_accepted":        FarmOutAssigned,
	"farm_out_declined":         FarmOutDeclined,
	"farmout_declined":          FarmOutDeclined,
	"farm_out_rejected":         FarmOutDeclined,
	"farmout_rejected":          FarmOutDeclined,
	"affiliate_declined":        FarmOutDeclined,
	"farm_out_completed":        FarmOutCompleted,
	"farmout_completed":         FarmOutCompleted,
	"affiliate_completed":       FarmOutCompleted,
	"farm_in_assigned":          FarmInAssigned,
	"farmin_assigned":           FarmInAssigned,
	"farmed_in_assigned":        FarmInAssigned,
	"created_farm_in_assigned":  FarmInAssigned,
	"created_farmin_assigned":   FarmInAssigned,
}

func init() {
	for code, key := range jobStatusKeys {
		aliases[code.String()] = key
	}
}
