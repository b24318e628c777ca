package seqqueue_test

import (
	"context"
	"fmt"

	"github.com/chixm/seqqueue"
)

func Example() {
	ctx := context.Background()
	q := seqqueue.New(ctx)
	defer q.Stop()

	var futures []*seqqueue.Future[string]
	for _, name := range []string{"a", "b", "c"} {
		f, err := seqqueue.Submit(ctx, q, func(context.Context) (string, error) {
			return name, nil
		})
		if err != nil {
			fmt.Println(err)
			return
		}
		futures = append(futures, f)
	}

	for _, f := range futures {
		v, _ := f.Await(ctx)
		fmt.Println(v)
	}
	// Output:
	// a
	// b
	// c
}

func ExampleDo() {
	ctx := context.Background()
	q := seqqueue.New(ctx)
	defer q.Stop()

	n, err := seqqueue.Do(ctx, q, func(context.Context) (int, error) {
		return 2 + 2, nil
	})
	fmt.Println(n, err)
	// Output: 4 <nil>
}
