// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"sort"

	"github.com/linuxdeepin/go-lib/log"
)

// dagBuilder collects the modules to enable plus everything they depend on
// and orders them so that a dependency always comes before its dependents.
type dagBuilder struct {
	modules         Modules
	enablingModules []string
	disableModules  map[string]struct{}
	flag            EnableFlag
	log             *log.Logger

	nodes map[string]struct{}
	edges map[string][]string // dependency -> dependents
}

func newDAGBuilder(l *Loader, enablingModules []string, disableModules []string, flag EnableFlag) *dagBuilder {
	disableModulesMap := make(map[string]struct{})
	for _, name := range disableModules {
		if _, ok := l.modules[name]; !ok {
			l.log.Warningf("disabled module(%s) does not exist", name)
			continue
		}
		disableModulesMap[name] = struct{}{}
	}

	return &dagBuilder{
		modules:         l.modules,
		enablingModules: enablingModules,
		disableModules:  disableModulesMap,
		flag:            flag,
		log:             l.log,
		nodes:           make(map[string]struct{}),
		edges:           make(map[string][]string),
	}
}

func (b *dagBuilder) build() error {
	queue := make([]string, 0, len(b.enablingModules))
	for _, name := range b.enablingModules {
		if _, ok := b.nodes[name]; !ok {
			b.nodes[name] = struct{}{}
			queue = append(queue, name)
		}
	}

	for len(queue) != 0 {
		name := queue[0]
		queue = queue[1:]

		module, ok := b.modules[name]
		if !ok {
			if b.flag.HasFlag(EnableFlagIgnoreMissingModule) {
				b.log.Info("no such a module named", name)
				delete(b.nodes, name)
				continue
			}
			return &EnableError{ModuleName: name, Code: ErrorMissingModule}
		}
		if _, ok := b.disableModules[name]; ok && !b.flag.HasFlag(EnableFlagForceStart) {
			return &EnableError{ModuleName: name, Code: ErrorConflict}
		}

		for _, dependency := range module.GetDependencies() {
			if _, ok := b.nodes[dependency]; !ok {
				b.nodes[dependency] = struct{}{}
				queue = append(queue, dependency)
			}
			b.edges[dependency] = append(b.edges[dependency], name)
		}
	}
	return nil
}

// sorted returns a topological order, or false if there is a cycle.
func (b *dagBuilder) sorted() ([]string, bool) {
	inDegree := make(map[string]int, len(b.nodes))
	for name := range b.nodes {
		inDegree[name] += 0
		for _, dependent := range b.edges[name] {
			inDegree[dependent]++
		}
	}

	var ready []string
	for name, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	var order []string
	for len(ready) != 0 {
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)

		var next []string
		for _, dependent := range b.edges[name] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				next = append(next, dependent)
			}
		}
		sort.Strings(next)
		ready = append(ready, next...)
	}

	return order, len(order) == len(b.nodes)
}
