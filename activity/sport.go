package activity

// FIT sport codes.
const (
	SportGeneric          uint8 = 0
	SportRunning          uint8 = 1
	SportCycling          uint8 = 2
	SportTransition       uint8 = 3
	SportFitnessEquipment uint8 = 4
	SportSwimming         uint8 = 5
	SportBasketball       uint8 = 6
	SportSoccer           uint8 = 7
	SportTennis           uint8 = 8
	SportTraining         uint8 = 10
	SportWalking          uint8 = 11
	SportCrossCountrySki  uint8 = 12
	SportAlpineSkiing     uint8 = 13
	SportSnowboarding     uint8 = 14
	SportRowing           uint8 = 15
	SportMountaineering   uint8 = 16
	SportHiking           uint8 = 17
	SportMultisport       uint8 = 18
	SportPaddling         uint8 = 19
	SportEBiking          uint8 = 21
	SportGolf             uint8 = 25
	SportInlineSkating    uint8 = 30
	SportRockClimbing     uint8 = 31
	SportSailing          uint8 = 32
	SportIceSkating       uint8 = 33
	SportSnowshoeing      uint8 = 35
	SportStandUpPaddle    uint8 = 37
	SportSurfing          uint8 = 38
	SportKayaking         uint8 = 41
	SportBoxing           uint8 = 47
	SportDiving           uint8 = 53
	SportHiit             uint8 = 62
	SportRacket           uint8 = 64
)

// FIT sub-sport codes.
const (
	SubSportGeneric         uint8 = 0
	SubSportTreadmill       uint8 = 1
	SubSportStreet          uint8 = 2
	SubSportTrail           uint8 = 3
	SubSportTrack           uint8 = 4
	SubSportSpin            uint8 = 5
	SubSportIndoorCycling   uint8 = 6
	SubSportRoad            uint8 = 7
	SubSportMountain        uint8 = 8
	SubSportDownhill        uint8 = 9
	SubSportCyclocross      uint8 = 11
	SubSportHandCycling     uint8 = 12
	SubSportTrackCycling    uint8 = 13
	SubSportIndoorRowing    uint8 = 14
	SubSportElliptical      uint8 = 15
	SubSportStairClimbing   uint8 = 16
	SubSportLapSwimming     uint8 = 17
	SubSportOpenWater       uint8 = 18
	SubSportFlexibility     uint8 = 19
	SubSportStrength        uint8 = 20
	SubSportCardio          uint8 = 26
	SubSportIndoorWalking   uint8 = 27
	SubSportCasualWalking   uint8 = 30
	SubSportSpeedWalking    uint8 = 31
	SubSportBackcountry     uint8 = 37
	SubSportResort          uint8 = 38
	SubSportSkateSkiing     uint8 = 42
	SubSportYoga            uint8 = 43
	SubSportPilates         uint8 = 44
	SubSportIndoorRunning   uint8 = 45
	SubSportGravelCycling   uint8 = 46
	SubSportEBikeMountain   uint8 = 47
	SubSportCommuting       uint8 = 48
	SubSportMixedSurface    uint8 = 49
	SubSportVirtualActivity uint8 = 58
	SubSportBreathing       uint8 = 62
	SubSportUltra           uint8 = 67
	SubSportIndoorClimbing  uint8 = 68
	SubSportBouldering      uint8 = 69
	SubSportHiit            uint8 = 70
	SubSportJumpRope        uint8 = 71
	SubSportPickleball      uint8 = 84
)

type sportKey struct {
	sport    uint8
	subSport uint8
}

// sportTable maps known FIT (sport, sub_sport) pairs to a Kind. Pairs not
// listed here fall back to (sport, generic).
var sportTable = map[sportKey]Kind{
	{SportGeneric, SubSportGeneric}:                 Activity,
	{SportGeneric, SubSportBreathing}:               Breathwork,
	{SportRunning, SubSportGeneric}:                 Running,
	{SportRunning, SubSportTreadmill}:               TreadmillRunning,
	{SportRunning, SubSportStreet}:                  Running,
	{SportRunning, SubSportTrail}:                   TrailRunning,
	{SportRunning, SubSportTrack}:                   TrackRunning,
	{SportRunning, SubSportIndoorRunning}:           IndoorRunning,
	{SportRunning, SubSportVirtualActivity}:         IndoorRunning,
	{SportRunning, SubSportUltra}:                   Running,
	{SportCycling, SubSportGeneric}:                 Cycling,
	{SportCycling, SubSportSpin}:                    IndoorCycling,
	{SportCycling, SubSportIndoorCycling}:           IndoorCycling,
	{SportCycling, SubSportRoad}:                    Cycling,
	{SportCycling, SubSportMountain}:                MountainBiking,
	{SportCycling, SubSportDownhill}:                MountainBiking,
	{SportCycling, SubSportCyclocross}:              GravelCycling,
	{SportCycling, SubSportHandCycling}:             HandCycling,
	{SportCycling, SubSportTrackCycling}:            Cycling,
	{SportCycling, SubSportGravelCycling}:           GravelCycling,
	{SportCycling, SubSportCommuting}:               Cycling,
	{SportCycling, SubSportMixedSurface}:            GravelCycling,
	{SportCycling, SubSportVirtualActivity}:         VirtualCycling,
	{SportEBiking, SubSportGeneric}:                 EBiking,
	{SportEBiking, SubSportEBikeMountain}:           EBiking,
	{SportTransition, SubSportGeneric}:              Transition,
	{SportFitnessEquipment, SubSportGeneric}:        CardioTraining,
	{SportFitnessEquipment, SubSportIndoorRowing}:   IndoorRowing,
	{SportFitnessEquipment, SubSportElliptical}:     Elliptical,
	{SportFitnessEquipment, SubSportStairClimbing}:  StairClimbing,
	{SportFitnessEquipment, SubSportIndoorWalking}:  IndoorWalking,
	{SportFitnessEquipment, SubSportTreadmill}:      TreadmillRunning,
	{SportFitnessEquipment, SubSportIndoorCycling}:  IndoorCycling,
	{SportFitnessEquipment, SubSportIndoorClimbing}: IndoorClimbing,
	{SportSwimming, SubSportGeneric}:                SwimmingPool,
	{SportSwimming, SubSportLapSwimming}:            SwimmingPool,
	{SportSwimming, SubSportOpenWater}:              SwimmingOpenWater,
	{SportBasketball, SubSportGeneric}:              Basketball,
	{SportSoccer, SubSportGeneric}:                  Soccer,
	{SportTennis, SubSportGeneric}:                  Tennis,
	{SportTraining, SubSportGeneric}:                StrengthTraining,
	{SportTraining, SubSportStrength}:               StrengthTraining,
	{SportTraining, SubSportCardio}:                 CardioTraining,
	{SportTraining, SubSportFlexibility}:            Yoga,
	{SportTraining, SubSportYoga}:                   Yoga,
	{SportTraining, SubSportPilates}:                Pilates,
	{SportTraining, SubSportBreathing}:              Breathwork,
	{SportWalking, SubSportGeneric}:                 Walking,
	{SportWalking, SubSportCasualWalking}:           Walking,
	{SportWalking, SubSportSpeedWalking}:            Walking,
	{SportWalking, SubSportIndoorWalking}:           IndoorWalking,
	{SportWalking, SubSportTreadmill}:               IndoorWalking,
	{SportCrossCountrySki, SubSportGeneric}:         CrossCountrySki,
	{SportCrossCountrySki, SubSportSkateSkiing}:     CrossCountrySki,
	{SportAlpineSkiing, SubSportGeneric}:            AlpineSkiing,
	{SportAlpineSkiing, SubSportBackcountry}:        AlpineSkiing,
	{SportAlpineSkiing, SubSportResort}:             AlpineSkiing,
	{SportSnowboarding, SubSportGeneric}:            Snowboarding,
	{SportRowing, SubSportGeneric}:                  Rowing,
	{SportRowing, SubSportIndoorRowing}:             IndoorRowing,
	{SportMountaineering, SubSportGeneric}:          Mountaineering,
	{SportHiking, SubSportGeneric}:                  Hiking,
	{SportMultisport, SubSportGeneric}:              Multisport,
	{SportPaddling, SubSportGeneric}:                Paddling,
	{SportGolf, SubSportGeneric}:                    Golf,
	{SportInlineSkating, SubSportGeneric}:           InlineSkating,
	{SportRockClimbing, SubSportGeneric}:            Climbing,
	{SportRockClimbing, SubSportIndoorClimbing}:     IndoorClimbing,
	{SportRockClimbing, SubSportBouldering}:         Bouldering,
	{SportSailing, SubSportGeneric}:                 Sailing,
	{SportIceSkating, SubSportGeneric}:              IceSkating,
	{SportSnowshoeing, SubSportGeneric}:             Snowshoeing,
	{SportStandUpPaddle, SubSportGeneric}:           StandUpPaddling,
	{SportSurfing, SubSportGeneric}:                 Surfing,
	{SportKayaking, SubSportGeneric}:                Kayaking,
	{SportBoxing, SubSportGeneric}:                  Boxing,
	{SportDiving, SubSportGeneric}:                  Diving,
	{SportHiit, SubSportGeneric}:                    Hiit,
	{SportHiit, SubSportHiit}:                       Hiit,
	{SportHiit, SubSportJumpRope}:                   JumpRope,
	{SportRacket, SubSportPickleball}:               Pickleball,
}

// Lookup returns the Kind for an exact (sport, subSport) pair.
func Lookup(sport, subSport uint8) (Kind, bool) {
	k, ok := sportTable[sportKey{sport: sport, subSport: subSport}]
	return k, ok
}

// FromCodes resolves a Kind. An unknown sub-sport falls back to the sport's
// generic entry; a sport with no generic entry is Unknown. The second result
// is false when the exact pair was not found, so callers can log it.
func FromCodes(sport, subSport uint8) (Kind, bool) {
	if k, ok := Lookup(sport, subSport); ok {
		return k, true
	}
	if k, ok := Lookup(sport, SubSportGeneric); ok {
		return k, false
	}
	return Unknown, false
}
