// Package compute resolves the training cluster: reuse it when it exists, otherwise
// provision it, then wait until it reports ready.
package compute

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"amlsubmit/models"
	"amlsubmit/pkg/app/pretty_log"
)

type API interface {
	GetCompute(ctx context.Context, ws *models.Workspace, name string) (*models.ComputeTarget, error)
	CreateCompute(ctx context.Context, ws *models.Workspace, name string, spec models.ComputeSpec) (*models.ComputeTarget, error)
	ListVMSizes(ctx context.Context, location string) ([]string, error)
	EnsureSubnet(ctx context.Context, ws *models.Workspace, network models.NetworkSpec) (string, error)
}

var (
	ErrProvisioningFailed = errors.New("compute provisioning failed")
	ErrVMSizeUnavailable  = errors.New("vm size not available in region")
)

type Resolver struct {
	API     API
	Network models.NetworkSpec

	// Timeout bounds the readiness wait. Zero means no bound beyond ctx.
	Timeout      time.Duration
	PollInterval time.Duration
}

// Resolve looks the cluster up by name and provisions it with spec when it does not
// exist. At most one provisioning request is issued and exactly one readiness wait follows.
func (r *Resolver) Resolve(ctx context.Context, ws *models.Workspace, name string, spec models.ComputeSpec) (*models.ComputeResolution, error) {
	res, err := r.lookupOrProvision(ctx, ws, name, spec)
	if err != nil {
		return nil, err
	}

	target, err := r.WaitForReady(ctx, ws, res.Target)
	if err != nil {
		return nil, err
	}
	res.Target = target

	return res, nil
}

func (r *Resolver) lookupOrProvision(ctx context.Context, ws *models.Workspace, name string, spec models.ComputeSpec) (*models.ComputeResolution, error) {
	target, err := r.API.GetCompute(ctx, ws, name)
	if err == nil {
		pretty_log.TaskResult("Found existing cluster %s, use it", name)
		return &models.ComputeResolution{Kind: models.Found, Target: target}, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up compute %s: %w", name, err)
	}

	pretty_log.TaskResult("Provisioning new compute target %s", name)

	err = r.checkVMSize(ctx, ws.Location, spec.VMSize)
	if err != nil {
		return nil, err
	}

	if spec.SubnetID == "" && r.Network.Enabled() {
		spec.SubnetID, err = r.API.EnsureSubnet(ctx, ws, r.Network)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare subnet %s: %w", r.Network.Subnet, err)
		}
	}

	target, err = r.API.CreateCompute(ctx, ws, name, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to provision compute %s: %w", name, err)
	}

	return &models.ComputeResolution{Kind: models.Provisioned, Target: target}, nil
}

func (r *Resolver) checkVMSize(ctx context.Context, location, vmSize string) error {
	sizes, err := r.API.ListVMSizes(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to list vm sizes in %s: %w", location, err)
	}

	for _, size := range sizes {
		if strings.EqualFold(size, vmSize) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s in %s", ErrVMSizeUnavailable, vmSize, location)
}

// WaitForReady polls the cluster until it reports a successful provisioning state.
// It fails when provisioning fails or is canceled, and when Timeout or ctx expires.
func (r *Resolver) WaitForReady(ctx context.Context, ws *models.Workspace, target *models.ComputeTarget) (*models.ComputeTarget, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	interval := r.PollInterval
	if interval <= 0 {
		interval = 15 * time.Second
	}

	id := pretty_log.BeginTask("Waiting for cluster %s", target.Name)
	for {
		if target.Ready() {
			pretty_log.CompleteTask(id)
			return target, nil
		}
		if target.Failed() {
			pretty_log.FailTask(id)
			return nil, fmt.Errorf("%w: %s is %s: %s", ErrProvisioningFailed, target.Name, target.ProvisioningState, strings.Join(target.Errors, "; "))
		}

		select {
		case <-ctx.Done():
			pretty_log.FailTask(id)
			return nil, fmt.Errorf("cluster %s not ready (state %q): %w", target.Name, target.ProvisioningState, ctx.Err())
		case <-time.After(interval):
		}

		current, err := r.API.GetCompute(ctx, ws, target.Name)
		if errors.Is(err, models.ErrNotFound) {
			// a freshly requested cluster can take a moment to show up
			continue
		}
		if err != nil {
			pretty_log.FailTask(id)
			return nil, err
		}
		target = current
	}
}
