// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

package genres

// builtinTags covers the demo roster so the static provider produces a
// connected genre graph out of the box. Keys are artist ID slugs as
// written by the mock seed data.
var builtinTags = map[string][]string{
	"boards-of-canada": {"IDM", "Electronic", "Ambient"},
	"aphex-twin":       {"IDM", "Electronic", "Acid"},
	"four-tet":         {"Electronic", "Folktronica", "IDM"},
	"radiohead":        {"Alternative Rock", "Art Rock", "Electronic"},
	"portishead":       {"Trip-Hop", "Electronic", "Downtempo"},
	"massive-attack":   {"Trip-Hop", "Electronic", "Downtempo"},
	"bonobo":           {"Downtempo", "Electronic", "Trip-Hop"},
	"tycho":            {"Ambient", "Electronic", "Downtempo"},
	"nils-frahm":       {"Modern Classical", "Ambient", "Piano"},
	"olafur-arnalds":   {"Modern Classical", "Ambient"},
	"khruangbin":       {"Psychedelic", "Funk", "Surf Rock"},
	"tame-impala":      {"Psychedelic", "Indie Rock"},
	"king-gizzard":     {"Psychedelic", "Garage Rock"},
	"mf-doom":          {"Hip-Hop", "Underground Hip-Hop"},
	"madlib":           {"Hip-Hop", "Instrumental Hip-Hop", "Jazz"},
	"j-dilla":          {"Hip-Hop", "Instrumental Hip-Hop"},
}

// NewBuiltinResolver returns a StaticResolver over the built-in table.
func NewBuiltinResolver() *StaticResolver {
	return NewStaticResolver(builtinTags)
}
