package main

import (
	"os"
	"reflect"
	"strings"

	"github.com/cinevec/cinevec/core"
	musgen "github.com/mus-format/musgen-go/mus"
	genops "github.com/mus-format/musgen-go/options/generate"
	structops "github.com/mus-format/musgen-go/options/struct"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	// If we're in the core subpackage, cd up to project root
	if strings.HasSuffix(cwd, "core") {
		if err := os.Chdir(".."); err != nil {
			panic(err)
		}
	}
	g, err := musgen.NewCodeGenerator(
		genops.WithPkgPath("github.com/cinevec/cinevec/core"),
	)
	if err != nil {
		panic(err)
	}

	g.AddDefinedType(reflect.TypeFor[core.MovieID]())

	err = g.AddStruct(reflect.TypeFor[core.CacheEntry](),
		structops.WithField(),
		structops.WithField())
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.CacheSnapshot](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField())
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.LegacyCacheSnapshot](),
		structops.WithField(),
		structops.WithField())
	if err != nil {
		panic(err)
	}

	bs, err := g.Generate()
	if err != nil {
		panic(err)
	}

	err = os.WriteFile("./core/records_mus.gen.go", bs, 0644)
	if err != nil {
		panic(err)
	}
}
