package timezone

import "testing"

func TestIsValid(t *testing.T) {
	cases := []struct {
		tz   string
		want bool
	}{
		{"America/Sao_Paulo", true},
		{"America/Bahia", true},
		{"UTC", true},
		{"", false},
		{"Marte/Olympus", false},
	}

	for _, tc := range cases {
		if got := IsValid(tc.tz); got != tc.want {
			t.Fatalf("IsValid(%q) = %v, esperado %v", tc.tz, got, tc.want)
		}
	}
}

func TestLocationFallsBackToDefault(t *testing.T) {
	if got := Location("").String(); got != DefaultTimezone {
		t.Fatalf("fuso vazio deve cair no padrão, veio %s", got)
	}

	if got := Location("Marte/Olympus").String(); got != DefaultTimezone {
		t.Fatalf("fuso inválido deve cair no padrão, veio %s", got)
	}

	if got := Location("America/Bahia").String(); got != "America/Bahia" {
		t.Fatalf("fuso válido deve ser respeitado, veio %s", got)
	}
}

func TestNowInUsesRequestedZone(t *testing.T) {
	if got := NowIn("America/Bahia").Location().String(); got != "America/Bahia" {
		t.Fatalf("NowIn deve devolver o horário no fuso pedido, veio %s", got)
	}
}
