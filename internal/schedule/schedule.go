package schedule

type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// RoleLunch marks the shared lunch slot across weekdays. Lunch rewrites
// match on this role, never on display text.
const RoleLunch = "lunch"

// Item is a fixed weekly-recurring activity slot. Ids are deterministic
// day+slot slugs so re-seeding an empty store never duplicates.
type Item struct {
	ID          string `json:"id"`
	Day         Day    `json:"day"`
	TimeSlot    string `json:"timeSlot"`
	Activity    string `json:"activity"`
	Description string `json:"description,omitempty"`
	Role        string `json:"role,omitempty"`
	Completed   bool   `json:"completed"`
}

// Weekly is the persisted shape: insertion-ordered items. Consumers filter
// by day and must not assume slot ordering within a day beyond insertion
// order.
type Weekly struct {
	Items []Item `json:"items"`
}

const defaultLunchSlot = "14:00 - 15:00"

type slot struct {
	suffix      string
	timeSlot    string
	activity    string
	description string
	role        string
}

var weekdaySlots = []slot{
	{"morning-focus", "08:00 - 10:00", "Morning Focus", "Deep work on the most important task of the day.", ""},
	{"standup", "10:00 - 10:30", "Team Standup", "Daily sync and planning.", ""},
	{"lunch", defaultLunchSlot, "Lunch & Break", "Step away from the desk.", RoleLunch},
	{"afternoon-work", "15:00 - 17:00", "Afternoon Work", "Meetings, reviews and follow-ups.", ""},
	{"wrap-up", "17:00 - 17:30", "Daily Wrap-up", "Close the day and prepare tomorrow's list.", ""},
}

var saturdaySlots = []slot{
	{"exercise", "09:00 - 10:00", "Exercise", "Run or gym session.", ""},
	{"errands", "11:00 - 13:00", "Errands", "Groceries and household chores.", ""},
	{"leisure", "15:00 - 18:00", "Leisure", "Free time, hobbies, friends.", ""},
}

var sundaySlots = []slot{
	{"weekly-planning", "18:00 - 19:00", "Weekly Planning", "Review the past week and plan the next.", ""},
}

func slugify(d Day, suffix string) string {
	b := make([]byte, 0, len(d)+1+len(suffix))
	for _, c := range []byte(string(d)) {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b = append(b, c)
	}
	b = append(b, '-')
	return string(b) + suffix
}

// DefaultWeekly seeds the canonical schedule: 5 slots per weekday Mon-Fri,
// 3 on Saturday, 1 on Sunday.
func DefaultWeekly() Weekly {
	var items []Item
	appendDay := func(d Day, slots []slot) {
		for _, s := range slots {
			items = append(items, Item{
				ID:          slugify(d, s.suffix),
				Day:         d,
				TimeSlot:    s.timeSlot,
				Activity:    s.activity,
				Description: s.description,
				Role:        s.role,
			})
		}
	}
	for _, d := range []Day{Monday, Tuesday, Wednesday, Thursday, Friday} {
		appendDay(d, weekdaySlots)
	}
	appendDay(Saturday, saturdaySlots)
	appendDay(Sunday, sundaySlots)
	return Weekly{Items: items}
}
