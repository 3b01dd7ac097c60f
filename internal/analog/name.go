// Package analog is the charger's table of measurement inputs and a snapshot
// store of their calibrated (real) and uncalibrated (raw) values.
package analog

// Name identifies one measurement input. Physical inputs come first,
// calculated inputs follow; iteration order is the declaration order.
type Name uint8

const (
	VoutPlusPin Name = iota
	VoutMinusPin
	Ismps
	Idischarge
	VoutMux
	Tintern
	Vin
	Textern
	Vb0Pin
	Vb1Pin
	Vb2Pin
	Vb3Pin
	Vb4Pin
	Vb5Pin
	Vb6Pin

	Vout
	VoutBalancer
	Iout
	Cout
	Pout
	Eout
	DeltaVout
	DeltaTextern
	Vbalancer
	Vb1
	Vb2
	Vb3
	Vb4
	Vb5
	Vb6
)

const (
	PhysicalInputs  = int(Vb6Pin) + 1
	AllInputs       = int(Vb6) + 1
	MaxBalanceCells = 6
)

// Channel1 is the fixed metric list of the core telemetry channel.
var Channel1 = [...]Name{
	VoutBalancer,
	Iout,
	Cout,
	Pout,
	Eout,
	Textern,
	Tintern,
	Vin,
	Vb1,
	Vb2,
	Vb3,
	Vb4,
	Vb5,
	Vb6,
}

var names = [AllInputs]string{
	VoutPlusPin:  "vout_plus_pin",
	VoutMinusPin: "vout_minus_pin",
	Ismps:        "ismps",
	Idischarge:   "idischarge",
	VoutMux:      "vout_mux",
	Tintern:      "tintern",
	Vin:          "vin",
	Textern:      "textern",
	Vb0Pin:       "vb0_pin",
	Vb1Pin:       "vb1_pin",
	Vb2Pin:       "vb2_pin",
	Vb3Pin:       "vb3_pin",
	Vb4Pin:       "vb4_pin",
	Vb5Pin:       "vb5_pin",
	Vb6Pin:       "vb6_pin",
	Vout:         "vout",
	VoutBalancer: "vout_balancer",
	Iout:         "iout",
	Cout:         "cout",
	Pout:         "pout",
	Eout:         "eout",
	DeltaVout:    "delta_vout",
	DeltaTextern: "delta_textern",
	Vbalancer:    "vbalancer",
	Vb1:          "vb1",
	Vb2:          "vb2",
	Vb3:          "vb3",
	Vb4:          "vb4",
	Vb5:          "vb5",
	Vb6:          "vb6",
}

func (n Name) String() string {
	if int(n) < len(names) {
		return names[n]
	}
	return "invalid"
}

func (n Name) Valid() bool    { return int(n) < AllInputs }
func (n Name) Physical() bool { return int(n) < PhysicalInputs }

func ParseName(s string) (Name, bool) {
	for i, x := range names {
		if x == s {
			return Name(i), true
		}
	}
	return 0, false
}

var (
	allInputs      = makeRange(AllInputs)
	physicalInputs = allInputs[:PhysicalInputs:PhysicalInputs]
)

func makeRange(n int) []Name {
	ns := make([]Name, n)
	for i := range ns {
		ns[i] = Name(i)
	}
	return ns
}
