//go:build integration

package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"frametrim/infrastructure/config"

	"github.com/cucumber/godog"
	"github.com/sethvargo/go-envconfig"
)

type configContext struct {
	tempDir    string
	configPath string
	env        map[string]string
	cfg        *config.Config
	loadErr    error
}

// SharedConfigContext is reset before each scenario
var SharedConfigContext = &configContext{}

func InitializeConfigScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedConfigContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "config-test-*")
		if err != nil {
			return c, err
		}
		*testCtx = configContext{
			tempDir:    tempDir,
			configPath: filepath.Join(tempDir, "config.yaml"),
			env:        make(map[string]string),
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^a configuration file containing:$`, testCtx.aConfigurationFileContaining)
	ctx.Step(`^no configuration file exists$`, testCtx.noConfigurationFileExists)
	ctx.Step(`^the environment variable "([^"]*)" is "([^"]*)"$`, testCtx.theEnvironmentVariableIs)
	ctx.Step(`^I load the configuration$`, testCtx.iLoadTheConfiguration)
	ctx.Step(`^I load the required configuration$`, testCtx.iLoadTheRequiredConfiguration)
	ctx.Step(`^the setting "([^"]*)" should be "([^"]*)"$`, testCtx.theSettingShouldBe)
	ctx.Step(`^the accepted video extensions should be "([^"]*)"$`, testCtx.theAcceptedVideoExtensionsShouldBe)
	ctx.Step(`^loading should fail with "([^"]*)"$`, testCtx.loadingShouldFailWith)
}

func (c *configContext) aConfigurationFileContaining(doc *godog.DocString) error {
	return os.WriteFile(c.configPath, []byte(doc.Content), 0644)
}

func (c *configContext) noConfigurationFileExists() error {
	return nil
}

func (c *configContext) theEnvironmentVariableIs(key, value string) error {
	c.env[key] = value
	return nil
}

func (c *configContext) load(optional bool) {
	c.cfg, c.loadErr = config.LoadWith(context.Background(), c.configPath, optional, envconfig.MapLookuper(c.env))
}

func (c *configContext) iLoadTheConfiguration() error {
	c.load(true)
	return nil
}

func (c *configContext) iLoadTheRequiredConfiguration() error {
	c.load(false)
	return nil
}

func (c *configContext) theSettingShouldBe(key, expected string) error {
	if c.loadErr != nil {
		return fmt.Errorf("config failed to load: %w", c.loadErr)
	}
	got, err := config.NewConfigManager(c.cfg, "").Get(key)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("expected %s to be %q, got %q", key, expected, got)
	}
	return nil
}

func (c *configContext) theAcceptedVideoExtensionsShouldBe(expected string) error {
	if c.loadErr != nil {
		return fmt.Errorf("config failed to load: %w", c.loadErr)
	}
	got := strings.Join(c.cfg.Formats.VideoExtensions, ",")
	if got != expected {
		return fmt.Errorf("expected extensions %q, got %q", expected, got)
	}
	return nil
}

func (c *configContext) loadingShouldFailWith(expected string) error {
	if c.loadErr == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(c.loadErr.Error(), expected) {
		return fmt.Errorf("expected error containing %q, got: %v", expected, c.loadErr)
	}
	return nil
}
