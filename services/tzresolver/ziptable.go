package tzresolver

// zipRange is one entry of the static, read-only zip-code range table.
// It is intentionally coarse: a pickup address whose zip falls outside
// every range resolves to no zone, and the scheduler then uses the
// booking's program timezone; this table only needs to be good enough to
// pick the correct civil-time zone for scheduling.
type zipRange struct {
	start, end int
	tz         string
}

var zipRanges = []zipRange{
	{0, 2799, "America/New_York"},
	{2800, 2999, "America/New_York"},
	{3000, 3899, "America/New_York"},
	{3900, 4999, "America/New_York"},
	{5000, 5999, "America/New_York"},
	{6000, 6999, "America/New_York"},
	{7000, 8999, "America/New_York"},
	{9000, 9999, "America/New_York"},
	{10000, 14999, "America/New_York"},
	{15000, 19699, "America/New_York"},
	{19700, 19999, "America/New_York"},
	{20000, 20599, "America/New_York"},
	{20600, 26999, "America/New_York"},
	{27000, 28999, "America/New_York"},
	{29000, 29999, "America/New_York"},
	{30000, 31999, "America/New_York"},
	{32000, 34999, "America/New_York"},
	{35000, 36999, "America/Chicago"},
	{37000, 38599, "America/Chicago"},
	{38600, 39999, "America/Chicago"},
	{40000, 42799, "America/New_York"},
	{42800, 47999, "America/Indiana/Indianapolis"},
	{48000, 49999, "America/Detroit"},
	{50000, 52999, "America/Chicago"},
	{53000, 54999, "America/Chicago"},
	{55000, 56799, "America/Chicago"},
	{57000, 57799, "America/Chicago"},
	{58000, 58899, "America/Chicago"},
	{59000, 59999, "America/Denver"},
	{60000, 62999, "America/Chicago"},
	{63000, 65899, "America/Chicago"},
	{66000, 67999, "America/Chicago"},
	{68000, 69399, "America/Chicago"},
	{70000, 71499, "America/Chicago"},
	{71600, 72999, "America/Chicago"},
	{73000, 74999, "America/Chicago"},
	{75000, 79999, "America/Chicago"},
	{80000, 81699, "America/Denver"},
	{82000, 83199, "America/Denver"},
	{83200, 83899, "America/Boise"},
	{84000, 84799, "America/Denver"},
	{85000, 86599, "America/Phoenix"},
	{87000, 88499, "America/Denver"},
	{88900, 89899, "America/Los_Angeles"},
	{90000, 96199, "America/Los_Angeles"},
	{96200, 96699, "America/Los_Angeles"},
	{96700, 96899, "Pacific/Honolulu"},
	{96900, 96999, "Pacific/Guam"},
	{97000, 97999, "America/Los_Angeles"},
	{98000, 99499, "America/Los_Angeles"},
	{99500, 99999, "America/Anchorage"},
}
