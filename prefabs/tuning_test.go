package prefabs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultTuningValid(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate())
}

func TestLoadTuningMatchesDefaults(t *testing.T) {
	got, err := LoadTuning("tuning.yaml")
	require.NoError(t, err)
	require.Equal(t, DefaultTuning(), got)
}

func TestParseTuning(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		wantErr bool
		check   func(t *testing.T, tu *Tuning)
	}{
		{
			name: "empty keeps defaults",
			data: "",
			check: func(t *testing.T, tu *Tuning) {
				require.Equal(t, DefaultTuning(), tu)
			},
		},
		{
			name: "partial override",
			data: "targeting:\n  leash_distance: 12\nballistics:\n  flat_speed: 50\n",
			check: func(t *testing.T, tu *Tuning) {
				require.Equal(t, 12.0, tu.Targeting.LeashDistance)
				require.Equal(t, 50.0, tu.Ballistics.FlatSpeed)
				require.Equal(t, 2.0, tu.Targeting.ReturnThreshold)
			},
		},
		{name: "unknown key", data: "targeting:\n  leash: 12\n", wantErr: true},
		{name: "zero speed", data: "ballistics:\n  flat_speed: 0\n", wantErr: true},
		{name: "aim inverted", data: "ranged:\n  aim_min: 2\n  aim_max: 1\n", wantErr: true},
		{name: "arc angle", data: "ballistics:\n  arc_angle_deg: 90\n", wantErr: true},
		{name: "height clamp", data: "combat:\n  height_clamp: 1\n", wantErr: true},
		{name: "negative threshold", data: "targeting:\n  parallel_scan_threshold: -1\n", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tu, err := ParseTuning(tc.name, []byte(tc.data))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			require.NoError(t, err)
			tc.check(t, tu)
		})
	}
}

func TestValidateWrapsSentinel(t *testing.T) {
	tu := DefaultTuning()
	tu.Separation.CellSize = -1
	require.ErrorIs(t, tu.Validate(), ErrInvalidTuning)

	var nilTuning *Tuning
	require.ErrorIs(t, nilTuning.Validate(), ErrInvalidTuning)
}
