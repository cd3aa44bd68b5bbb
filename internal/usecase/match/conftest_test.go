package match

import (
	"testing"

	"github.com/kailas-cloud/navegador/internal/domain/location"
)

// araraquara returns the documented ten-entry directory in catalog order.
func araraquara() []location.ServiceLocation {
	return []location.ServiceLocation{
		location.New("UPA Vila Xavier", "R. Mal. Deodoro da Fonseca, 900", "(16) 3305-1500",
			[]string{"saude", "grave", "urgencia", "24h", "fratura", "infarto", "falta de ar"}),
		location.New("UPA Valle Verde", "Av. Bercholina Alves Carvalho Conceição", "(16) 3336-3500",
			[]string{"saude", "grave", "urgencia", "24h"}),
		location.New("UPA Central", "Via Expressa", "(16) 3334-6900",
			[]string{"saude", "grave", "urgencia", "24h"}),
		location.New("UBS (Unidade Básica de Saúde)", "Consultar unidade mais próxima do usuário", "0800-771-7723",
			[]string{"saude", "leve", "vacina", "receita", "curativo", "febre"}),
		location.New("Casa de Acolhida", "Av. Sete de Setembro, 678 - Carmo", "(16) 3336-7510",
			[]string{"acolhimento", "pernoite", "itinerante", "24h", "masculino", "feminino"}),
		location.New("Associação São Pio", "Av. Santa Catarina, 137 - Jd. Aclimação", "(16) 3331-5999",
			[]string{"acolhimento", "pernoite", "animais", "pet", "feminino", "masculino"}),
		location.New("Sacrário de Amor", "Av. Feijó, 69 - Centro", "(16) 3322-4242",
			[]string{"acolhimento", "pernoite", "masculino"}),
		location.New("Centro Pop", "Av. Bandeirantes, 1000 - Centro", "(16) 3336-2633",
			[]string{"social", "documentos", "higiene", "diurno", "cafe"}),
		location.New("Organização Bento XVI", "Rua Expedicionários do Brasil, 2525", "(16) 3332-6171",
			[]string{"social", "alimentacao", "banho", "diurno"}),
		location.New("CAPS AD", "Av. Maria Antônia Camargo de Oliveira, 2921", "(16) 3331-4860",
			[]string{"saude", "mental", "drogas", "alcool", "dependencia"}),
	}
}

func names(scored []location.Scored) []string {
	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.Location().Name()
	}
	return out
}

func assertNonIncreasing(t *testing.T, scored []location.Scored) {
	t.Helper()
	for i := 1; i < len(scored); i++ {
		if scored[i].Score() > scored[i-1].Score() {
			t.Fatalf("scores not sorted at %d: %d > %d", i, scored[i].Score(), scored[i-1].Score())
		}
	}
}
