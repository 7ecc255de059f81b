/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry_test

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"dirpx.dev/commons/config"
	"dirpx.dev/commons/registry"
)

type (
	ledger   struct{}
	voucher  struct{}
	receipt  struct{}
	shipment struct{}
)

// A type keeps its first name: once bound, claims on any other name fail
// regardless of which goroutine gets there first.
func TestConcurrentNameClaims(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	types := []reflect.Type{
		reflect.TypeOf(ledger{}),
		reflect.TypeOf(voucher{}),
		reflect.TypeOf(receipt{}),
		reflect.TypeOf(shipment{}),
	}

	var won, lost atomic.Int64
	var wg sync.WaitGroup
	for i := range types {
		wg.Add(1)
		go func(tt reflect.Type, id int) {
			defer wg.Done()
			if err := reg.Register(tt, fmt.Sprintf("own.%d", id)); err != nil {
				t.Errorf("own name for %v: %v", tt, err)
			}
			err := reg.Register(tt, "shared")
			switch {
			case err == nil:
				won.Add(1)
			case errors.Is(err, registry.ErrConflictingName),
				errors.Is(err, registry.ErrConflictingRegistration):
				lost.Add(1)
			default:
				t.Errorf("unexpected error for %v: %v", tt, err)
			}
		}(types[i], i)
	}
	wg.Wait()

	// A type already bound to its own name cannot take "shared".
	if won.Load() != 0 || lost.Load() != int64(len(types)) {
		t.Fatalf("won=%d lost=%d", won.Load(), lost.Load())
	}
	if _, ok := reg.Find("shared"); ok {
		t.Fatalf("shared must stay unbound")
	}
	if reg.Count() != len(types) {
		t.Fatalf("count: got %d want %d", reg.Count(), len(types))
	}
}

// Unbound types racing for one name: a single winner, Find agrees with it.
func TestConcurrentFirstClaimWins(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	types := []reflect.Type{
		reflect.TypeOf(&ledger{}),
		reflect.TypeOf([]voucher{}),
		reflect.TypeOf(map[string]receipt{}),
		reflect.TypeOf(shipment{}),
	}

	var wg sync.WaitGroup
	var winners atomic.Int64
	start := make(chan struct{})
	for _, tt := range types {
		for w := 0; w < runtime.GOMAXPROCS(0); w++ {
			wg.Add(1)
			go func(tt reflect.Type) {
				defer wg.Done()
				<-start
				if err := reg.Register(tt, "billing.document"); err == nil {
					winners.Add(1)
				}
			}(tt)
		}
	}
	close(start)
	wg.Wait()

	// Idempotent retries of the winning pair also return nil, so count
	// distinct entries instead of successful calls.
	if reg.Count() != 1 {
		t.Fatalf("count: got %d want 1", reg.Count())
	}
	if winners.Load() < 1 {
		t.Fatalf("no registration succeeded")
	}
	rt, ok := reg.Find("billing.document")
	if !ok {
		t.Fatalf("Find returned nothing")
	}
	name, ok := reg.Lookup(rt)
	if !ok || name != "billing.document" {
		t.Fatalf("Lookup(%v) = %q, %v", rt, name, ok)
	}
}

// Readers keep working while a writer clears and refills the registry.
func TestConcurrentResetWhileReading(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	tt := reflect.TypeOf(voucher{})

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for r := 0; r < runtime.GOMAXPROCS(0)*2; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if name, ok := reg.Lookup(tt); ok && name != "pay.voucher" {
					t.Errorf("unexpected name %q", name)
					return
				}
				for _, e := range reg.Entries() {
					if e.Type != tt {
						t.Errorf("unexpected entry %v", e.Type)
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 2000; i++ {
		if err := reg.Register(tt, "pay.voucher"); err != nil {
			t.Errorf("register: %v", err)
			break
		}
		if i%2 == 0 {
			reg.Clear()
		}
	}
	close(stop)
	wg.Wait()
}
