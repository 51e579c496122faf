package gas

import "testing"

func TestMixType(t *testing.T) {
	tests := []struct {
		name string
		mix  Mix
		want Type
		str  string
	}{
		{name: "Air", mix: Mix{O2: 0.21, N2: 0.79}, want: Air, str: "Air"},
		{name: "Nitrox32", mix: Mix{O2: 0.32, N2: 0.68}, want: Nitrox, str: "Nitrox"},
		{name: "Nitrox100", mix: Mix{O2: 1.0}, want: Nitrox, str: "Nitrox"},
		{name: "Trimix2135", mix: Mix{O2: 0.21, N2: 0.44, He: 0.35}, want: Trimix, str: "Trimix"},
		{name: "Trimix1845", mix: Mix{O2: 0.18, N2: 0.37, He: 0.45}, want: Trimix, str: "Trimix"},
		{name: "Heliox2179", mix: Mix{O2: 0.21, He: 0.79}, want: Heliox, str: "Heliox"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mix.MixType(); got != tt.want {
				t.Errorf("MixType() = %v; want %v", got, tt.want)
			}
			if got := tt.mix.MixType().String(); got != tt.str {
				t.Errorf("MixType().String() = %s; want %s", got, tt.str)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mix     Mix
		wantErr bool
	}{
		{name: "air ok", mix: Mix{O2: 0.21, N2: 0.79}, wantErr: false},
		{name: "trimix ok", mix: Mix{O2: 0.21, N2: 0.44, He: 0.35}, wantErr: false},
		{name: "sums short", mix: Mix{O2: 0.21, N2: 0.5}, wantErr: true},
		{name: "negative fraction", mix: Mix{O2: 0.21, N2: 0.89, He: -0.1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mix.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewTrimixValidation(t *testing.T) {
	if _, err := NewTrimix(0.05, 0.35, 60); err == nil {
		t.Error("expected error for O2 fraction below 0.1")
	}
	if _, err := NewTrimix(0.21, 0.0, 60); err == nil {
		t.Error("expected error for He fraction below 0.01")
	}
	if _, err := NewTrimix(0.6, 0.6, 60); err == nil {
		t.Error("expected error for fractions summing over 1.0")
	}
	mix, err := NewTrimix(0.18, 0.45, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mix.N2 < 0.36 || mix.N2 > 0.38 {
		t.Errorf("derived N2 fraction = %v; want ~0.37", mix.N2)
	}
}

func TestEADAirIsIdentity(t *testing.T) {
	air := NewAir(0)
	got := air.EAD(30.0, 0.09985)
	if got < 29.9 || got > 30.1 {
		t.Errorf("EAD(30) for air = %v; want ~30", got)
	}
}

func TestMOD(t *testing.T) {
	ean32, err := NewNitrox(0.32, 21)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mod := ean32.MOD(1.4, 1.01325, 0.09985)
	if mod < 33.0 || mod > 34.0 {
		t.Errorf("MOD(1.4) for EAN32 = %v; want ~33.7", mod)
	}
}

func TestBestMix(t *testing.T) {
	mix, err := BestMix(21.0, 1.4, 1.01325, 0.09985, 21.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mix.O2 < 0.45 || mix.O2 > 0.5 {
		t.Errorf("BestMix O2 = %v; want ~0.45-0.50", mix.O2)
	}
}
