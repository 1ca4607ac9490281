// pages.go - HTML templates for the customer and admin surfaces.
package server

import (
	"html/template"
	"net/http"
)

func (s *Server) renderPage(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		Error("render_page", map[string]any{"template": tmpl.Name()}, err)
	}
}

var recordingTmpl = template.Must(template.New("recording").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Record Your Issue - Support</title>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body { font-family: 'Segoe UI', Tahoma, sans-serif; margin: 0; padding: 20px;
               background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); min-height: 100vh; }
        .container { max-width: 900px; margin: 0 auto; background: white; padding: 40px;
                     border-radius: 15px; box-shadow: 0 10px 30px rgba(0,0,0,0.2); }
        .header { text-align: center; margin-bottom: 40px; padding-bottom: 30px; border-bottom: 3px solid #667eea; }
        .header h1 { color: #333; margin: 0; }
        .record-section { background: #f8f9fa; padding: 30px; border-radius: 15px; margin: 30px 0; text-align: center; }
        .record-btn { background: #dc3545; color: white; padding: 18px 36px; border: none; border-radius: 50px;
                      cursor: pointer; font-size: 18px; margin: 10px; min-width: 230px; }
        .record-btn:disabled { background: #6c757d; cursor: not-allowed; }
        .recording-status { display: none; color: #dc3545; font-weight: bold; margin: 20px 0; }
        .recording-status.active { display: block; }
        .timer { font-family: 'Courier New', monospace; font-size: 32px; color: #dc3545; margin: 15px 0; }
        .preview-area { margin: 40px 0; min-height: 200px; border: 3px dashed #ddd; border-radius: 15px;
                        padding: 30px; background: #f8f9fa; text-align: center; }
        .preview-video { max-width: 100%; border-radius: 10px; }
        .share-section { background: #f8f9fa; padding: 30px; border-radius: 15px; margin: 30px 0; display: none; }
        .share-section.active { display: block; }
        .share-section input { width: 100%; padding: 12px; margin: 10px 0; font-family: monospace;
                               border: 2px solid #667eea; border-radius: 6px; box-sizing: border-box; }
        .submit-btn { background: #667eea; color: white; padding: 14px 30px; border: none; border-radius: 8px;
                      cursor: pointer; font-size: 16px; margin: 10px 0; text-decoration: none; display: inline-block; }
        .status { padding: 16px; border-radius: 10px; margin: 20px 0; text-align: center; }
        .status-info { background: #d1ecf1; color: #0c5460; }
        .status-success { background: #d4edda; color: #155724; }
        .status-error { background: #f8d7da; color: #721c24; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Screen Recording Tool</h1>
            <p>Show us your issue by recording your screen</p>
        </div>

        <div class="record-section">
            <button id="recordBtn" class="record-btn">Start Screen Recording</button>
            <button id="stopBtn" class="record-btn" disabled>Stop Recording</button>
            <div class="recording-status" id="recordingStatus">
                <div class="timer" id="timer">00:00</div>
                RECORDING - show us what's wrong
            </div>
        </div>

        <div class="preview-area" id="previewArea">
            <p>Your recording will appear here.</p>
        </div>

        <div class="share-section" id="shareSection">
            <h3>Your recording is ready</h3>
            <p>Share this link with your support agent:</p>
            <input type="text" id="shareUrl" readonly>
            <button id="copyBtn" class="submit-btn">Copy Link</button>
            <a id="downloadBtn" href="#" class="submit-btn">Download Video</a>
        </div>

        <div id="status"></div>
    </div>

    <script>
        let mediaRecorder, stream, startTime, timerInterval;
        let recordedChunks = [];

        const recordBtn = document.getElementById('recordBtn');
        const stopBtn = document.getElementById('stopBtn');
        const previewArea = document.getElementById('previewArea');
        const shareSection = document.getElementById('shareSection');
        const recordingStatus = document.getElementById('recordingStatus');
        const timer = document.getElementById('timer');
        const shareUrl = document.getElementById('shareUrl');
        const downloadBtn = document.getElementById('downloadBtn');

        if (!navigator.mediaDevices || !navigator.mediaDevices.getDisplayMedia) {
            showStatus('Screen recording requires Chrome, Firefox, or Edge.', 'error');
            recordBtn.disabled = true;
        }

        recordBtn.addEventListener('click', startRecording);
        stopBtn.addEventListener('click', stopRecording);
        document.getElementById('copyBtn').addEventListener('click', function () {
            shareUrl.select();
            navigator.clipboard.writeText(shareUrl.value);
            showStatus('Link copied to clipboard.', 'success');
        });

        async function startRecording() {
            try {
                stream = await navigator.mediaDevices.getDisplayMedia({
                    video: { width: { ideal: 1920 }, height: { ideal: 1080 }, frameRate: { ideal: 30 } },
                    audio: true
                });

                recordedChunks = [];
                let mimeType = 'video/webm;codecs=vp9,opus';
                if (!MediaRecorder.isTypeSupported(mimeType)) mimeType = 'video/webm';

                mediaRecorder = new MediaRecorder(stream, { mimeType });
                mediaRecorder.ondataavailable = (e) => { if (e.data.size > 0) recordedChunks.push(e.data); };
                mediaRecorder.onstop = onRecordingStopped;
                stream.getVideoTracks()[0].addEventListener('ended', stopRecording);
                mediaRecorder.start(1000);

                recordBtn.disabled = true;
                stopBtn.disabled = false;
                recordingStatus.classList.add('active');
                startTime = Date.now();
                timerInterval = setInterval(updateTimer, 1000);
                showStatus('Recording started.', 'info');

                // Client-side policy: stop automatically after 15 minutes.
                setTimeout(() => {
                    if (mediaRecorder && mediaRecorder.state === 'recording') {
                        stopRecording();
                        showStatus('Recording automatically stopped after 15 minutes.', 'info');
                    }
                }, 900000);
            } catch (err) {
                showStatus('Unable to start recording. Please grant screen-share permission and try again.', 'error');
            }
        }

        function stopRecording() {
            if (mediaRecorder && mediaRecorder.state === 'recording') {
                mediaRecorder.stop();
                stream.getTracks().forEach(t => t.stop());
                recordBtn.disabled = false;
                stopBtn.disabled = true;
                recordingStatus.classList.remove('active');
                clearInterval(timerInterval);
            }
        }

        async function onRecordingStopped() {
            const blob = new Blob(recordedChunks, { type: 'video/webm' });
            const localUrl = URL.createObjectURL(blob);

            const video = document.createElement('video');
            video.src = localUrl;
            video.controls = true;
            video.className = 'preview-video';
            previewArea.innerHTML = '';
            previewArea.appendChild(video);

            const filename = 'support-recording-' + Date.now() + '.webm';
            downloadBtn.href = localUrl;
            downloadBtn.download = filename;

            await uploadRecording(blob, filename);
        }

        async function uploadRecording(blob, filename) {
            try {
                const formData = new FormData();
                formData.append('recording', blob, filename);
                formData.append('duration', timer.textContent);

                const response = await fetch('/api/store-recording', { method: 'POST', body: formData });
                const result = await response.json();

                if (response.ok && result.recording_url) {
                    shareUrl.value = result.recording_url;
                    shareSection.classList.add('active');
                    showStatus('Recording uploaded. Your shareable link is ready.', 'success');
                } else {
                    throw new Error(result.error || 'Upload failed');
                }
            } catch (err) {
                showStatus('Upload failed. You can still download the recording and share it manually.', 'error');
                shareSection.classList.add('active');
            }
        }

        function updateTimer() {
            const elapsed = Math.floor((Date.now() - startTime) / 1000);
            const m = String(Math.floor(elapsed / 60)).padStart(2, '0');
            const s = String(elapsed % 60).padStart(2, '0');
            timer.textContent = m + ':' + s;
        }

        function showStatus(message, type) {
            document.getElementById('status').innerHTML =
                '<div class="status status-' + type + '">' + message + '</div>';
        }
    </script>
</body>
</html>
`))

var watchTmpl = template.Must(template.New("watch").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Recording {{.ID}} - Support</title>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body { font-family: 'Segoe UI', Tahoma, sans-serif; margin: 0; padding: 20px; background: #f5f7fa; }
        .container { max-width: 900px; margin: 40px auto; background: white; padding: 30px;
                     border-radius: 12px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        video { width: 100%; border-radius: 8px; background: #000; }
        .meta { color: #666; margin: 15px 0; }
        .download { background: #667eea; color: white; padding: 12px 24px; border-radius: 8px;
                    text-decoration: none; display: inline-block; }
    </style>
</head>
<body>
    <div class="container">
        <h2>Screen Recording</h2>
        <video controls preload="metadata" src="/api/video/{{.ID}}"></video>
        <p class="meta">Duration: {{.Duration}} &middot; Recorded: {{.CreatedAt}} &middot; {{.SizeBytes}} bytes</p>
        <a class="download" href="/api/download/{{.ID}}">Download</a>
    </div>
</body>
</html>
`))

var notFoundTmpl = template.Must(template.New("notfound").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Recording Not Found</title>
    <style>
        body { font-family: 'Segoe UI', Tahoma, sans-serif; background: #f5f7fa; text-align: center; padding: 100px 20px; }
        .card { max-width: 480px; margin: 0 auto; background: white; padding: 40px;
                border-radius: 12px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        a { color: #667eea; }
    </style>
</head>
<body>
    <div class="card">
        <h2>Recording not found</h2>
        <p>This recording does not exist or is no longer available. Recordings live only while the service is running.</p>
        <p><a href="/recording">Record a new clip</a></p>
    </div>
</body>
</html>
`))

type loginPageData struct {
	Error string
}

var adminLoginTmpl = template.Must(template.New("adminlogin").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Admin Login - Screen Recording Tool</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 400px; margin: 100px auto; padding: 20px; background: #f5f7fa; }
        .login-form { background: white; padding: 30px; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        input { width: 100%; padding: 12px; margin: 10px 0; border: 1px solid #ddd; border-radius: 4px; box-sizing: border-box; }
        button { background-color: #007cba; color: white; padding: 12px; width: 100%; border: none; border-radius: 4px; cursor: pointer; font-size: 16px; }
        .error { color: #d73527; margin: 10px 0; }
    </style>
</head>
<body>
    <div class="login-form">
        <h2>Admin Access</h2>
        <p>Screen Recording Tool Administration</p>
        {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
        <form method="post">
            <input type="text" name="username" placeholder="Username" required>
            <input type="password" name="password" placeholder="Password" required>
            <button type="submit">Login</button>
        </form>
    </div>
</body>
</html>
`))

type dashboardPageData struct {
	RelayConfigured bool
	RelayName       string
	StoredCount     int
	UploadEvents    int
	Metrics         MetricsSnapshot
	Version         string
}

var adminDashboardTmpl = template.Must(template.New("admindash").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Admin Dashboard - Screen Recording Tool</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 1100px; margin: 0 auto; padding: 20px; background: #f5f7fa; }
        .header { background: #007cba; color: white; padding: 20px; border-radius: 8px; margin-bottom: 20px; }
        .container { background: white; padding: 30px; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); margin: 20px 0; }
        .logout { float: right; background: rgba(255,255,255,0.2); color: white; padding: 8px 15px; text-decoration: none; border-radius: 4px; }
        .customer-link { background: #28a745; color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px; display: inline-block; }
        .stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 20px; margin: 20px 0; }
        .stat-card { background: #f8f9fa; padding: 20px; border-radius: 8px; text-align: center; }
        .relay-status { padding: 15px; border-radius: 8px; margin: 20px 0; }
        .relay-enabled { background: #e8f5e8; color: #1b5e20; }
        .relay-disabled { background: #ffebee; color: #c62828; }
    </style>
</head>
<body>
    <div class="header">
        <a href="/admin/logout" class="logout">Logout</a>
        <h1>Screen Recording Admin</h1>
        <p>Version {{.Version}}</p>
    </div>

    <div class="container">
        <h2>Customer Interface</h2>
        <p>Share this link with customers who need to record their screen:</p>
        <a href="/recording" target="_blank" class="customer-link">Customer Recording Interface</a>
    </div>

    <div class="container">
        <h2>Relay Status</h2>
        {{if .RelayConfigured}}
        <div class="relay-status relay-enabled">
            <strong>Relay connected ({{.RelayName}})</strong><br>
            Recordings are forwarded to the storage provider and customers get shareable links.
        </div>
        {{else}}
        <div class="relay-status relay-disabled">
            <strong>No relay configured</strong><br>
            Recordings are held in process memory and served via local watch links until restart.
        </div>
        {{end}}
    </div>

    <div class="container">
        <h2>System Status</h2>
        <div class="stats">
            <div class="stat-card"><h3>Uploads</h3><p>{{.Metrics.UploadsTotal}}</p></div>
            <div class="stat-card"><h3>Relay errors</h3><p>{{.Metrics.RelayErrorsTotal}}</p></div>
            <div class="stat-card"><h3>Stored in memory</h3><p>{{.StoredCount}}</p></div>
            <div class="stat-card"><h3>Views</h3><p>{{.Metrics.ViewsTotal}}</p></div>
            <div class="stat-card"><h3>Downloads</h3><p>{{.Metrics.DownloadsTotal}}</p></div>
            <div class="stat-card"><h3>Recent events</h3><p>{{.UploadEvents}}</p></div>
        </div>
        <p><a href="/admin/logs">Upload events and error log</a></p>
    </div>
</body>
</html>
`))

type logsPageData struct {
	Uploads []UploadEvent
	Errors  []ErrorEntry
}

var adminLogsTmpl = template.Must(template.New("adminlogs").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Logs - Screen Recording Tool</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 1100px; margin: 0 auto; padding: 20px; background: #f5f7fa; }
        .container { background: white; padding: 30px; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); margin: 20px 0; }
        table { width: 100%; border-collapse: collapse; }
        th, td { text-align: left; padding: 8px 10px; border-bottom: 1px solid #eee; font-size: 14px; }
        th { background: #f8f9fa; }
        .empty { color: #888; }
        a { color: #007cba; }
    </style>
</head>
<body>
    <p><a href="/admin">&larr; Back to dashboard</a></p>

    <div class="container">
        <h2>Recent Uploads</h2>
        {{if .Uploads}}
        <table>
            <tr><th>Time</th><th>ID</th><th>Filename</th><th>Duration</th><th>Size</th><th>Storage</th></tr>
            {{range .Uploads}}
            <tr>
                <td>{{.UploadedAt.Format "2006-01-02 15:04:05"}}</td>
                <td>{{.ID}}</td>
                <td>{{.Filename}}</td>
                <td>{{.Duration}}</td>
                <td>{{.SizeBytes}}</td>
                <td>{{.Storage}}</td>
            </tr>
            {{end}}
        </table>
        {{else}}<p class="empty">No uploads yet.</p>{{end}}
    </div>

    <div class="container">
        <h2>Error Log</h2>
        {{if .Errors}}
        <table>
            <tr><th>Time</th><th>Scope</th><th>Message</th></tr>
            {{range .Errors}}
            <tr>
                <td>{{.Time.Format "2006-01-02 15:04:05"}}</td>
                <td>{{.Scope}}</td>
                <td>{{.Message}}</td>
            </tr>
            {{end}}
        </table>
        {{else}}<p class="empty">No errors recorded.</p>{{end}}
    </div>
</body>
</html>
`))
