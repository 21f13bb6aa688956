package api

import (
	"net/http"
	"sort"

	"github.com/platinummonkey/contentlint/pkg/httputil"
	"github.com/platinummonkey/contentlint/pkg/linter"
)

func ruleInfo(rule linter.Rule) RuleInfo {
	return RuleInfo{
		ID:          rule.ID(),
		Name:        rule.Name(),
		Tags:        rule.Tags(),
		Severity:    rule.Severity(),
		Description: rule.Description(),
	}
}

// listRules returns all registered rules
func (s *Server) listRules(w http.ResponseWriter, r *http.Request) {
	rules := s.engine.Registry().GetAllRules()

	infos := make([]RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo(rule))
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })

	httputil.WriteSuccess(w, map[string]interface{}{
		"rules": infos,
		"total": len(infos),
	})
}

// getRule returns one rule by ID or name
func (s *Server) getRule(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	rule, found := s.engine.Registry().GetRule(id)
	if !found {
		httputil.WriteNotFoundError(w, "rule not found: "+id)
		return
	}

	httputil.WriteSuccess(w, ruleInfo(rule))
}
