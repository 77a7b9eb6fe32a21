package param

// Shared descriptor strings.
const (
	FreqDef       = "f,-5,0.04,6,5,Hz"
	FreqModDef    = "f,-12,0.04,12,0,oct"
	TimeDef       = "f,-10,0.1,10,4,s"
	LFOFreqDef    = "f,-5,0.04,6,4,Hz"
	PercentDef    = "f,0,0.005,1,1,%"
	PercentBPDef  = "f,-1,0.005,1,1,%"
	PercentModDef = "f,-32,0.005,32,1,%"
	DBDef         = "f,-96,0.1,12,0,dB"
	DBBPDef       = "f,-48,0.1,48,0,dB"
	DBModDef      = "f,-96,0.1,96,0,dB"
	MPitchDef     = "f,-96,0.04,96,0,cents"
	BWDef         = "f,0.001,0.005,6,0,oct"
)

// Parsed forms of the shared descriptors. Read-only after package init.
var (
	Freq       = MustParse(FreqDef)
	FreqMod    = MustParse(FreqModDef)
	Time       = MustParse(TimeDef)
	LFOFreq    = MustParse(LFOFreqDef).WithRef(1)
	Percent    = MustParse(PercentDef)
	PercentBP  = MustParse(PercentBPDef)
	PercentMod = MustParse(PercentModDef)
	DB         = MustParse(DBDef)
	DBBP       = MustParse(DBBPDef)
	DBMod      = MustParse(DBModDef)
	MPitch     = MustParse(MPitchDef)
	BW         = MustParse(BWDef)
)

// Choice builds a discrete descriptor with n entries and default def.
func Choice(n, def int) Descriptor {
	if n < 1 {
		n = 1
	}
	return Descriptor{Kind: KindInt, Min: 0, Step: 1, Max: float64(n - 1), Default: float64(min(max(def, 0), n-1))}
}
