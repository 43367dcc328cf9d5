// Package mtl reads the diffuse colors out of Wavefront MTL material libraries.
package mtl

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	mgl "github.com/go-gl/mathgl/mgl32"
)

type vec3 = mgl.Vec3

// Table maps a material name to its diffuse color.
type Table map[string]vec3

// Lookup returns the diffuse color of the named material.
func (t Table) Lookup(name string) (vec3, bool) {
	if t == nil {
		return vec3{}, false
	}
	c, ok := t[name]
	return c, ok
}

// Merge copies every entry of other into t, replacing existing names.
func (t Table) Merge(other Table) {
	for name, c := range other {
		t[name] = c
	}
}

// Parse builds a Table from MTL source. Only newmtl and Kd are understood,
// everything else is skipped. A Kd component that is missing or does not
// parse becomes NaN.
func Parse(src []byte) (Table, error) {
	table := Table{}
	name := ""

	scanner := bufio.NewScanner(bytes.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "newmtl":
			if len(fields) > 1 {
				name = fields[1]
			} else {
				name = ""
			}
		case "Kd":
			table[name] = vec3{
				component(fields, 1),
				component(fields, 2),
				component(fields, 3),
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mtl: %w", err)
	}
	return table, nil
}

func component(fields []string, i int) float32 {
	if i >= len(fields) {
		return math32.NaN()
	}
	f, err := strconv.ParseFloat(fields[i], 32)
	if err != nil {
		return math32.NaN()
	}
	return float32(f)
}
