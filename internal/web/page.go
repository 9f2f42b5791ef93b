package web

// Single-page form. The browser posts JSON to /run and pings /heartbeat once
// a minute to keep the inactivity watchdog satisfied while the tab is open.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Jira Data Extractor</title>
<style>
  body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; }
  label { display: block; margin-top: 0.8rem; font-weight: bold; }
  input { width: 100%; padding: 0.4rem; box-sizing: border-box; }
  button { margin-top: 1rem; padding: 0.6rem 1.4rem; }
  pre { background: #f4f4f4; padding: 1rem; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>Jira Data Extractor</h1>
<p>Extract sprint issues, worklogs and comments to Excel.</p>
<details id="settings">
  <summary>Connection Settings</summary>
  <label>Jira URL</label><input id="cfg-url" placeholder="https://yourcompany.atlassian.net">
  <label>Email</label><input id="cfg-email" type="email">
  <label>API Token</label><input id="cfg-token" type="password" placeholder="leave blank to keep current">
  <button type="button" id="cfg-save">Save Settings</button>
</details>
<form id="form">
  <label>Project Key</label><input name="project" placeholder="e.g. NG" required>
  <label>Sprint ID(s)</label><input name="sprints" placeholder="e.g. 123 or 123,456">
  <label>Start Date</label><input name="start_date" type="date">
  <label>End Date</label><input name="end_date" type="date">
  <label>Epic Label</label><input name="epic_label" placeholder="optional">
  <label><input name="open_epics" type="checkbox" style="width:auto"> Include open epics</label>
  <label>Extra JQL</label><input name="jql" placeholder="optional filter clause">
  <button type="submit">Run Extraction</button>
</form>
<h2>Log</h2>
<pre id="log"></pre>
<p id="download" style="display:none"><a href="/download">Download Excel file</a></p>
<script>
setInterval(function () { fetch('/heartbeat', {method: 'POST'}); }, 60000);
fetch('/config').then(function (r) { return r.json(); }).then(function (c) {
  document.getElementById('cfg-url').value = c.jira_api_url || '';
  document.getElementById('cfg-email').value = c.jira_user_email || '';
  if (!c.token_set) { document.getElementById('settings').open = true; }
});
document.getElementById('cfg-save').addEventListener('click', async function () {
  var resp = await fetch('/config', {method: 'POST', headers: {'Content-Type': 'application/json'}, body: JSON.stringify({
    jira_api_url: document.getElementById('cfg-url').value,
    jira_user_email: document.getElementById('cfg-email').value,
    jira_api_token: document.getElementById('cfg-token').value
  })});
  alert(resp.ok ? 'Settings saved' : 'Save failed');
});
document.getElementById('form').addEventListener('submit', async function (ev) {
  ev.preventDefault();
  var fd = new FormData(ev.target);
  var body = {
    project: fd.get('project').toUpperCase(),
    sprints: fd.get('sprints'),
    start_date: fd.get('start_date'),
    end_date: fd.get('end_date'),
    epic_label: fd.get('epic_label'),
    open_epics: fd.get('open_epics') === 'on',
    jql: fd.get('jql')
  };
  var log = document.getElementById('log');
  log.textContent = 'Running...';
  var resp = await fetch('/run', {method: 'POST', headers: {'Content-Type': 'application/json'}, body: JSON.stringify(body)});
  var data = await resp.json();
  log.textContent = (data.log || []).join('\n') + (data.error ? '\nError: ' + data.error : '');
  document.getElementById('download').style.display = resp.ok ? 'block' : 'none';
});
</script>
</body>
</html>`
