package model

import (
	"io/ioutil"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// PlatformRule assigns Platform to a service with no platform from upstream
// when its destination contains DestinationContains.
type PlatformRule struct {
	DestinationContains string `yaml:"destination_contains"`
	Platform            string `yaml:"platform"`
}

type PlatformRules []PlatformRule

// DefaultPlatformRules reflect the usual platforming at Hassocks: southbound
// services use platform 2 and London services platform 1.
var DefaultPlatformRules = PlatformRules{
	{DestinationContains: "Littlehampton", Platform: "2"},
	{DestinationContains: "Brighton", Platform: "2"},
	{DestinationContains: "London Victoria", Platform: "1"},
}

type platformRulesFile struct {
	Rules PlatformRules `yaml:"rules"`
}

// LoadPlatformRules reads rules from a YAML file of the form
//
//	rules:
//	  - destination_contains: Brighton
//	    platform: "2"
func LoadPlatformRules(path string) (PlatformRules, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read platform rules file `%s`", path)
	}

	f := platformRulesFile{}
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, errors.Wrapf(err, "cannot unmarshal platform rules file `%s`", path)
	}

	for i, rule := range f.Rules {
		if rule.DestinationContains == "" || rule.Platform == "" {
			return nil, errors.Errorf("platform rule %d in `%s` must set destination_contains and platform", i+1, path)
		}
	}

	return f.Rules, nil
}

// Assign returns platform unchanged when it is set, otherwise the platform of
// the first rule matching destination, otherwise "".
func (rules PlatformRules) Assign(platform string, destination string) string {
	if platform != "" {
		return platform
	}

	for _, rule := range rules {
		if strings.Contains(destination, rule.DestinationContains) {
			return rule.Platform
		}
	}

	return ""
}
