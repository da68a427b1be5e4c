package submit

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amlsubmit/models"
	"amlsubmit/pkg/app/pretty_log"
)

type fakeAPI struct {
	codes     map[string]string
	uploads   int
	submitted []*models.Submission
	names     []string
	statuses  []string
	submitErr error
}

func (f *fakeAPI) GetCode(_ context.Context, _ *models.Workspace, name string) (string, error) {
	if id, ok := f.codes[name]; ok {
		return id, nil
	}
	return "", models.ErrNotFound
}

func (f *fakeAPI) UploadCode(_ context.Context, _ *models.Workspace, _ *models.Datastore, staging *models.StagingResult, _ int) (string, error) {
	f.uploads++
	if f.codes == nil {
		f.codes = map[string]string{}
	}
	f.codes[staging.Digest] = "/codes/" + staging.Digest
	return f.codes[staging.Digest], nil
}

func (f *fakeAPI) SubmitJob(_ context.Context, _ *models.Workspace, name string, sub *models.Submission) (*models.RunHandle, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = append(f.submitted, sub)
	f.names = append(f.names, name)
	return &models.RunHandle{Name: name, Status: "NotStarted"}, nil
}

func (f *fakeAPI) GetJob(_ context.Context, _ *models.Workspace, name string) (*models.RunHandle, error) {
	status := f.statuses[0]
	if len(f.statuses) > 1 {
		f.statuses = f.statuses[1:]
	}
	return &models.RunHandle{Name: name, Status: status}, nil
}

func TestMain(m *testing.M) {
	pretty_log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

var (
	ws      = &models.Workspace{Name: "demo"}
	staging = &models.StagingResult{Dir: "/tmp/aml/staging", Files: []string{"train.py"}, Digest: "abc123"}
)

func submission() *models.Submission {
	return &models.Submission{
		SourceDirectory: staging.Dir,
		Script:          "train.py",
		Arguments:       []string{"--data", "${{inputs.input}}"},
		ComputeTarget:   &models.ComputeTarget{Name: "gpu-cluster", ID: "/computes/gpu-cluster"},
		Environment:     &models.EnvironmentDescriptor{Name: "yolov3", Version: "1"},
		EnvironmentID:   "/environments/yolov3/versions/1",
		Experiment:      "keras-yolo3",
	}
}

func TestSubmitUploadsNewSnapshot(t *testing.T) {
	api := &fakeAPI{}
	s := &Submitter{API: api, Datastore: &models.Datastore{Name: "workspaceblobstore"}}

	run, err := s.Submit(context.Background(), ws, submission(), staging)
	require.NoError(t, err)

	assert.Equal(t, 1, api.uploads)
	require.Len(t, api.submitted, 1)
	assert.Equal(t, "/codes/abc123", api.submitted[0].CodeID)
	assert.Equal(t, "keras-yolo3", run.Experiment)
	assert.True(t, strings.HasPrefix(api.names[0], "keras-yolo3_"))
}

func TestSubmitReusesSnapshot(t *testing.T) {
	api := &fakeAPI{codes: map[string]string{"abc123": "/codes/abc123"}}
	s := &Submitter{API: api}

	_, err := s.Submit(context.Background(), ws, submission(), staging)
	require.NoError(t, err)
	assert.Zero(t, api.uploads)
	require.Len(t, api.submitted, 1)
	assert.Equal(t, "/codes/abc123", api.submitted[0].CodeID)
}

func TestSubmitRejectsIncompleteSubmission(t *testing.T) {
	api := &fakeAPI{}
	sub := submission()
	sub.ComputeTarget = nil
	sub.Script = ""

	_, err := (&Submitter{API: api}).Submit(context.Background(), ws, sub, staging)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script, compute target")
	assert.Empty(t, api.submitted)
}

func TestSubmitPropagatesErrors(t *testing.T) {
	boom := errors.New("conflict")
	api := &fakeAPI{submitErr: boom, codes: map[string]string{"abc123": "/codes/abc123"}}

	_, err := (&Submitter{API: api}).Submit(context.Background(), ws, submission(), staging)
	assert.ErrorIs(t, err, boom)
}

func TestWaitForCompletion(t *testing.T) {
	api := &fakeAPI{statuses: []string{"Queued", "Running", "Completed"}}

	run, err := WaitForCompletion(context.Background(), api, ws, &models.RunHandle{Name: "r1", Status: "NotStarted"}, time.Millisecond, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "Completed", run.Status)
}

func TestWaitForCompletionTimeout(t *testing.T) {
	api := &fakeAPI{statuses: []string{"Running"}}

	run, err := WaitForCompletion(context.Background(), api, ws, &models.RunHandle{Name: "r1", Status: "Queued"}, time.Millisecond, 20*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "Running", run.Status)
}
