package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bankscope-dev/bankscope/internal/model"
)

// Rules maps a category to its pattern list. Patterns are case-insensitive
// regular expressions matched against the transaction description.
type Rules map[model.Category][]string

// DefaultRules returns the built-in pattern table for Spanish bank
// statements. Order within a list does not affect results; only whether any
// pattern in the list matches.
func DefaultRules() Rules {
	return Rules{
		model.CategorySale: {
			`transfer.*en div`, `ingreso`, `cobro`, `venta`, `factura`,
			`pago.*recibido`, `abono`, `stripe`, `paypal`,
		},
		model.CategoryGeneralExpense: {
			`google ads`, `facebook`, `facebk`, `canva`, `publicidad`, `marketing`,
			`office`, `microsoft`, `adobe`, `hosting`, `dominio`, `servidor`,
			`aws`, `azure`, `dropbox`, `zoom`, `software`, `licencia`,
			`suscripcion`, `alquiler`, `luz`, `agua`, `telefono`, `internet`,
			`gestor`, `asesoria`, `seguro`, `banco`, `comision`,
		},
		model.CategoryPayroll: {
			`nomina`, `salario`, `sueldo`, `tgss`, `seguridad social`,
			`cotizacion`, `irpf`, `autonomo`,
		},
		model.CategoryRawMaterial: {
			`compra`, `proveedor`, `material`, `suministro`,
			`mercaderia`, `stock`,
		},
	}
}

// LoadRules reads a YAML rules file. Categories present in the file replace
// the default pattern list for that category; absent categories keep the
// defaults, so a rules file only needs to name what it changes.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}

	var loaded map[string][]string
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}

	rules := DefaultRules()
	for name, patterns := range loaded {
		cat, ok := model.ParseCategory(name)
		if !ok {
			return nil, fmt.Errorf("unknown category %q in rules", name)
		}
		if cat == model.CategoryNotApplicable {
			return nil, fmt.Errorf("category %q cannot carry patterns", name)
		}
		rules[cat] = patterns
	}
	return rules, nil
}

// SaveRules writes a rules table as YAML.
func SaveRules(path string, rules Rules) error {
	out := make(map[string][]string, len(rules))
	for cat, patterns := range rules {
		out[string(cat)] = patterns
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}
