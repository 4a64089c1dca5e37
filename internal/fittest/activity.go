package fittest

import "time"

// Start is the session start used by Activity.
var Start = time.Date(2026, 2, 26, 23, 0, 0, 0, time.UTC)

// Activity returns a small running activity: file_id, sport, user profile,
// two GPS records, a session, a heart rate time-in-zone breakdown,
// physiological metrics and one unmapped event message.
func Activity() []byte {
	var b Builder

	b.Define(0, 0,
		Field{Num: 0, Size: 1, Base: Enum},
		Field{Num: 1, Size: 2, Base: Uint16},
		Field{Num: 2, Size: 2, Base: Uint16},
		Field{Num: 3, Size: 4, Base: Uint32z},
		Field{Num: 4, Size: 4, Base: Uint32},
	)
	b.Data(0, U8(4), U16(1), U16(3121), U32(3999000001), Time(Start))

	b.Define(1, 12,
		Field{Num: 0, Size: 1, Base: Enum},
		Field{Num: 1, Size: 1, Base: Enum},
		Field{Num: 3, Size: 16, Base: String},
	)
	b.Data(1, U8(1), U8(3), Str("Trail Run", 16))

	b.Define(2, 3,
		Field{Num: 4, Size: 2, Base: Uint16},
		Field{Num: 7, Size: 1, Base: Enum},
	)
	b.Data(2, U16(725), U8(0))

	b.Define(3, 20,
		Field{Num: 253, Size: 4, Base: Uint32},
		Field{Num: 0, Size: 4, Base: Sint32},
		Field{Num: 1, Size: 4, Base: Sint32},
		Field{Num: 3, Size: 1, Base: Uint8},
	)
	b.Data(3, Time(Start.Add(time.Second)), I32(Semicircles(45.5)), I32(Semicircles(-73.6)), U8(120))
	b.Data(3, Time(Start.Add(2*time.Second)), I32(0x7FFFFFFF), I32(0x7FFFFFFF), U8(125))

	b.Define(4, 18,
		Field{Num: 2, Size: 4, Base: Uint32},
		Field{Num: 5, Size: 1, Base: Enum},
		Field{Num: 6, Size: 1, Base: Enum},
		Field{Num: 7, Size: 4, Base: Uint32},
		Field{Num: 8, Size: 4, Base: Uint32},
		Field{Num: 9, Size: 4, Base: Uint32},
		Field{Num: 10, Size: 4, Base: Uint32},
		Field{Num: 16, Size: 1, Base: Uint8},
		Field{Num: 17, Size: 1, Base: Uint8},
		Field{Num: 18, Size: 1, Base: Uint8},
		Field{Num: 124, Size: 4, Base: Uint32},
	)
	b.Data(4,
		Time(Start),
		U8(1), U8(3),
		U32(1800000), U32(1750000), U32(500000), U32(2600),
		U8(150), U8(181), U8(85),
		U32(2778),
	)

	b.Define(5, 216,
		Field{Num: 0, Size: 2, Base: Uint16},
		Field{Num: 1, Size: 2, Base: Uint16},
		Field{Num: 2, Size: 24, Base: Uint32},
	)
	b.Data(5, U16(18), U16(0),
		Concat(U32(0), U32(100000), U32(200000), U32(0), U32(0), U32(0)))

	b.Define(6, 140,
		Field{Num: 4, Size: 1, Base: Uint8},
		Field{Num: 9, Size: 2, Base: Uint16},
		Field{Num: 20, Size: 1, Base: Uint8},
	)
	b.Data(6, U8(32), U16(720), U8(11))

	b.Define(7, 21,
		Field{Num: 0, Size: 1, Base: Enum},
		Field{Num: 1, Size: 1, Base: Enum},
	)
	b.Data(7, U8(0), U8(4))

	return b.Bytes()
}
