// file: internal/schema/name_rules_test.go

package schema

import (
	"strings"
	"testing"
)

func TestValidateName_Tools(t *testing.T) {
	valid := []string{"add_series", "list_episodes", "system_status", "get_wanted"}
	for _, name := range valid {
		if err := ValidateName(EntityTypeTool, name); err != nil {
			t.Errorf("ValidateName(tool, %q) returned error: %v", name, err)
		}
	}

	invalid := []string{
		"",
		"AddSeries",
		"add-series",
		"add series",
		"1series",
		"series!",
		strings.Repeat("a", 65),
	}
	for _, name := range invalid {
		if err := ValidateName(EntityTypeTool, name); err == nil {
			t.Errorf("ValidateName(tool, %q) should fail", name)
		}
	}
}

func TestValidateName_Resources(t *testing.T) {
	valid := []string{"sonarr://series/collection", "sonarr://config/quality-profiles", "sonarr://queue/current"}
	for _, uri := range valid {
		if err := ValidateName(EntityTypeResource, uri); err != nil {
			t.Errorf("ValidateName(resource, %q) returned error: %v", uri, err)
		}
	}

	invalid := []string{"series/collection", "http://series", "sonarr://Series", "sonarr://series/", "sonarr://"}
	for _, uri := range invalid {
		if err := ValidateName(EntityTypeResource, uri); err == nil {
			t.Errorf("ValidateName(resource, %q) should fail", uri)
		}
	}
}

func TestValidateName_UnknownEntity(t *testing.T) {
	if err := ValidateName(EntityType("prompt"), "anything"); err == nil {
		t.Error("ValidateName should reject unknown entity types")
	}
	if _, ok := GetNameRule(EntityTypeTool); !ok {
		t.Error("GetNameRule(tool) should exist")
	}
}
