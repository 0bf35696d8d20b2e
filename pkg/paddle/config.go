package paddle

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// languageCodes maps ISO 639-3 (and common tesseract-style) codes to the
// language identifiers understood by PaddleOCR.
var languageCodes = map[string]string{
	"afr":     "af",
	"alb":     "sq",
	"bel":     "be",
	"bos":     "bs",
	"ces":     "cs",
	"chi_sim": "ch",
	"chi_tra": "chinese_cht",
	"cym":     "cy",
	"cze":     "cs",
	"dan":     "da",
	"deu":     "de",
	"dut":     "nl",
	"eng":     "en",
	"est":     "et",
	"esp":     "es",
	"fra":     "fr",
	"gle":     "ga",
	"hrv":     "hr",
	"hun":     "hu",
	"ice":     "is",
	"ind":     "id",
	"isl":     "is",
	"ita":     "it",
	"jpn":     "japan",
	"kor":     "korean",
	"lat":     "la",
	"lit":     "lt",
	"may":     "ms",
	"msa":     "ms",
	"nld":     "nl",
	"nor":     "no",
	"oci":     "oc",
	"pol":     "pl",
	"por":     "pt",
	"rus":     "ru",
	"slk":     "sk",
	"slo":     "sk",
	"slv":     "sl",
	"spa":     "es",
	"swa":     "sw",
	"swe":     "sv",
	"tha":     "th",
	"tgl":     "tl",
	"tur":     "tr",
	"ukr":     "uk",
}

// Languages lists the ISO 639-3 codes the engine accepts.
func Languages() []string {
	codes := make([]string, 0, len(languageCodes))
	for code := range languageCodes {
		codes = append(codes, code)
	}
	return codes
}

// Config holds the connection and model settings for a PaddleOCR service.
type Config struct {
	Endpoint       string   `yaml:"endpoint"`
	AuthToken      string   `yaml:"auth_token"`
	Languages      []string `yaml:"languages"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`

	DetectionModelName   string `yaml:"text_detection_model_name"`
	DetectionModelDir    string `yaml:"text_detection_model_dir"`
	RecognitionModelName string `yaml:"text_recognition_model_name"`
	RecognitionModelDir  string `yaml:"text_recognition_model_dir"`

	paddleLanguages []string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Languages:      []string{"eng"},
		TimeoutSeconds: 120,
	}
}

// LoadConfig reads a Config from a YAML file. Fields absent from the file
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// resolveLanguages translates the configured ISO 639-3 codes into Paddle
// language identifiers, rejecting codes the engine does not know.
func (c *Config) resolveLanguages() error {
	c.paddleLanguages = c.paddleLanguages[:0]
	for _, lang := range c.Languages {
		code, ok := languageCodes[lang]
		if !ok {
			return fmt.Errorf("paddle: unsupported language %q", lang)
		}
		c.paddleLanguages = append(c.paddleLanguages, code)
	}
	return nil
}
