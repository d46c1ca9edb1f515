package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "demo":
		return demoTemplate, nil
	case "locale":
		return localeTemplate, nil
	default:
		return "", fmt.Errorf("unknown manifest kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("manifest already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const demoTemplate = `name = "demo"

[[binding]]
source = "viewmodel"
source_path = "Number"
target = "view"
target_path = "NumericBox.Text"

[[binding]]
source = "viewmodel"
source_path = "Number"
target = "view"
target_path = "NumericBox.Enabled"
enabled_from_writability = true

[[binding]]
source = "viewmodel"
source_path = "Text"
target = "view"
target_path = "StringBox.Text"

[[binding]]
source = "viewmodel"
source_path = "Computed"
target = "view"
target_path = "ComputedBox.Text"
mode = "one_way"

[[binding]]
source = "viewmodel"
source_path = "Computed"
target = "view"
target_path = "ComputedBox.Enabled"
enabled_from_writability = true

[[step]]
object = "viewmodel"
path = "Number"
value = "42"

[[step]]
object = "view"
path = "StringBox.Text"
value = "Total"

[[step]]
object = "view"
path = "NumericBox.Text"
value = ""
`

const localeTemplate = `name = "locale"

[[binding]]
source = "viewmodel"
source_path = "Number"
target = "view"
target_path = "NumericBox.Text"
locale = "de"

[[step]]
object = "viewmodel"
path = "Number"
value = "1234567"

[[step]]
object = "view"
path = "NumericBox.Text"
value = "7.654.321"
`
