package xrepo_test

import (
	"context"
	"fmt"

	"github.com/omeyang/xengine/pkg/engine/xcontainer"
	"github.com/omeyang/xengine/pkg/engine/xrepo"
)

func ExampleRepository_Containers() {
	src := xrepo.SourceFunc(func(_ context.Context, q xcontainer.Query) ([]any, error) {
		return []any{map[string]any{
			"Id": "8dfafdbc3a40b1e1", "Names": []any{"/web"}, "Image": "nginx",
			"Created": 1735689600.0, "State": "running", "Status": "Up 2 hours",
		}}, nil
	})

	repo, err := xrepo.New(src, xrepo.WithRetry(1, 0))
	if err != nil {
		panic(err)
	}
	list, err := repo.Containers(context.Background(), xcontainer.Query{All: true})
	if err != nil {
		panic(err)
	}
	for _, c := range list {
		fmt.Println(c.Name(), c.State)
	}
	// Output: web running
}
