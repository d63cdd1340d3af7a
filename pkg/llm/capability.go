package llm

// CapabilityChecker is the pre-flight gate for whether the external
// reasoning service is usable. Purely a read of configuration, no probing.
type CapabilityChecker interface {
	Check() (configured bool, reason string)
}

// ConfigCapability gates on static provider configuration.
type ConfigCapability struct {
	Provider string
	Model    string
	BaseURL  string
}

func NewConfigCapability(provider, model, baseURL string) *ConfigCapability {
	return &ConfigCapability{
		Provider: provider,
		Model:    model,
		BaseURL:  baseURL,
	}
}

func (c *ConfigCapability) Check() (bool, string) {
	if c.Provider == "" {
		return false, "no LLM provider configured (set LLM_PROVIDER)"
	}
	if c.Model == "" {
		return false, "no LLM model configured (set LLM_MODEL)"
	}
	if c.Provider == "ollama" && c.BaseURL == "" {
		return false, "ollama selected but OLLAMA_BASE_URL is empty"
	}
	return true, ""
}
