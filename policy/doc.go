// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package policy defines the global drawing limits and the Provider
capability that hands them to the validation gate and the draw engine.

Policy values come from configuration in production (see
cliparse and FromConfig) but are injected everywhere as a Provider so
nothing reads process-global state:

	prov := policy.FromConfig(cfg)
	eng := engine.New(st, ven, notifier, prov)
*/
package policy
